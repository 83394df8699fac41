package uow_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/pos-ledger/pkg/uow"
	"github.com/fsdevblog/pos-ledger/pkg/uow/mocks"
)

type ledgerRepo struct {
	conn uow.DBTX
}

type walletRepo struct{}

const ledgerRepoName uow.RepositoryName = "ledger"

func TestTransaction_GetCachesPerTransaction(t *testing.T) {
	calls := 0
	repos := map[uow.RepositoryName]uow.RepositoryFactory{
		ledgerRepoName: func(dbtx uow.DBTX) uow.Repository {
			calls++
			return &ledgerRepo{conn: dbtx}
		},
	}
	tx := uow.NewTransaction(nil, repos)

	first, err := uow.GetAs[*ledgerRepo](tx, ledgerRepoName)
	require.NoError(t, err)
	second, err := uow.GetAs[*ledgerRepo](tx, ledgerRepoName)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	_, err = tx.Get("missing")
	require.ErrorIs(t, err, uow.ErrRepositoryNotRegistered)
}

func TestGetAs_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	tx := mocks.NewMockTX(ctrl)

	tx.EXPECT().Get(ledgerRepoName).Return(&walletRepo{}, nil)
	_, err := uow.GetAs[*ledgerRepo](tx, ledgerRepoName)
	require.ErrorIs(t, err, uow.ErrInvalidRepositoryType)

	tx.EXPECT().Get(ledgerRepoName).Return(nil, uow.ErrRepositoryNotRegistered)
	_, err = uow.GetAs[*ledgerRepo](tx, ledgerRepoName)
	require.ErrorIs(t, err, uow.ErrRepositoryNotRegistered)
}

func TestGetRepositoryAs(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockDBTX(ctrl)
	u := mocks.NewMockUOW(ctrl)

	u.EXPECT().GetRepository(ledgerRepoName).Return(&ledgerRepo{conn: conn}, nil)
	repo, err := uow.GetRepositoryAs[*ledgerRepo](u, ledgerRepoName)
	require.NoError(t, err)
	assert.Equal(t, conn, repo.conn)

	u.EXPECT().GetRepository(ledgerRepoName).Return(&walletRepo{}, nil)
	_, err = uow.GetRepositoryAs[*ledgerRepo](u, ledgerRepoName)
	require.ErrorIs(t, err, uow.ErrInvalidRepositoryType)
}

func TestUnitOfWork_RegisterTwice(t *testing.T) {
	u := uow.NewUnitOfWork(nil, uow.WithTimeout(0))
	factory := func(uow.DBTX) uow.Repository { return &walletRepo{} }

	require.NoError(t, u.Register(ledgerRepoName, factory))
	require.ErrorIs(t, u.Register(ledgerRepoName, factory), uow.ErrRepositoryAlreadyRegistered)
}
