package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LeaderboardSource --dir ../usecase --output usecase --outpkg usecasemock --filename leaderboard_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ProfileSource --dir ../usecase --output usecase --outpkg usecasemock --filename profile_source_mock.go
