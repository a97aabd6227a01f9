package auth_test

import (
	"historyatlas/src/domain/entities"
	"historyatlas/src/test_artefacts/stubs"
)

func someUser() entities.User {
	return stubs.NewUserStub().Get()
}
