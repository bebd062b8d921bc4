package executor

import (
	"github.com/stretchr/testify/mock"

	"github.com/RichardKnop/jsondb/internal/jsondb"
	"github.com/RichardKnop/jsondb/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetTable(name string) (*jsondb.Table, error) {
	args := m.Called(name)
	aTable, _ := args.Get(0).(*jsondb.Table)
	return aTable, args.Error(1)
}

func (m *MockStorage) CreateTable(aTable *jsondb.Table) error {
	return m.Called(aTable).Error(0)
}

func (m *MockStorage) DropTable(name string) error {
	return m.Called(name).Error(0)
}

func (m *MockStorage) InsertRows(aTable *jsondb.Table, rows []jsondb.Row) error {
	return m.Called(aTable, rows).Error(0)
}

func (m *MockStorage) UpdateRows(aTable *jsondb.Table, predicate storage.Predicate, mutator storage.Mutator) (int, error) {
	args := m.Called(aTable, predicate, mutator)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) DeleteRows(aTable *jsondb.Table, predicate storage.Predicate) (int, error) {
	args := m.Called(aTable, predicate)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) CreateIndex(aTable *jsondb.Table, name, column string) error {
	return m.Called(aTable, name, column).Error(0)
}

func (m *MockStorage) DropIndex(aTable *jsondb.Table, name string) error {
	return m.Called(aTable, name).Error(0)
}
