package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/odds --output domain/odds --outpkg oddsmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Sender --dir ../domain/delivery --output domain/delivery --outpkg deliverymock --filename sender_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Ledger --dir ../domain/delivery --output domain/delivery --outpkg deliverymock --filename ledger_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Lookup --dir ../domain/matching --output domain/matching --outpkg matchingmock --filename lookup_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name BatchLookup --dir ../domain/matching --output domain/matching --outpkg matchingmock --filename batch_lookup_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FlaggedEventRepository --dir ../domain/matching --output domain/matching --outpkg matchingmock --filename flagged_event_repository_mock.go
