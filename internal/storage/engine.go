package storage

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

// UpdateMode selects how UpdateRows handles a row failing validation.
type UpdateMode int

const (
	// UpdateAtomic validates every prospective row before changing any.
	UpdateAtomic UpdateMode = iota + 1
	// UpdateInPlace mutates rows as it scans. Rows changed before the
	// failing one stay changed in memory and are not persisted.
	UpdateInPlace
)

func (m UpdateMode) String() string {
	if m == UpdateInPlace {
		return "in_place"
	}
	return "atomic"
}

// ParseUpdateMode accepts "atomic" and "in_place".
func ParseUpdateMode(s string) (UpdateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "atomic":
		return UpdateAtomic, nil
	case "in_place", "inplace":
		return UpdateInPlace, nil
	}
	return 0, fmt.Errorf("invalid update mode %q", s)
}

type Option func(*Engine)

func WithUpdateMode(mode UpdateMode) Option {
	return func(e *Engine) {
		e.updateMode = mode
	}
}

// Engine is the storage engine: a table cache backed by JSON files, with
// constraint enforcement and index maintenance on every mutation. It does no
// locking; callers sharing an Engine must serialize access.
type Engine struct {
	files      *FileStorage
	tables     *TableManager
	indexes    *IndexManager
	updateMode UpdateMode
	logger     *zap.Logger
}

func New(logger *zap.Logger, dir string, opts ...Option) *Engine {
	files := NewFileStorage(logger, dir)
	e := &Engine{
		files:      files,
		tables:     NewTableManager(logger, files),
		indexes:    NewIndexManager(logger, files),
		updateMode: UpdateAtomic,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Dir() string {
	return e.files.Dir()
}

func (e *Engine) UpdateMode() UpdateMode {
	return e.updateMode
}

// CreateTable persists a new table. A primary key column gets a hash index
// named pk_<table>_<column>.
func (e *Engine) CreateTable(aTable *jsondb.Table) error {
	if err := validateSchema(aTable); err != nil {
		return err
	}
	if err := e.tables.CheckAvailable(aTable.Name); err != nil {
		return err
	}
	if pk, ok := aTable.PrimaryKey(); ok {
		if _, err := e.indexes.Create(aTable, jsondb.PrimaryKeyIndexName(aTable.Name, pk.Name), pk.Name); err != nil {
			return err
		}
	}
	if err := e.tables.Create(aTable); err != nil {
		return err
	}
	return e.indexes.SaveAll(aTable)
}

func validateSchema(aTable *jsondb.Table) error {
	if strings.TrimSpace(aTable.Name) == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if len(aTable.Columns) == 0 {
		return fmt.Errorf("table %s must have at least one column", aTable.Name)
	}
	var (
		seen        = make(map[string]struct{}, len(aTable.Columns))
		primaryKeys int
	)
	for _, aColumn := range aTable.Columns {
		key := strings.ToLower(aColumn.Name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate column %q in table %s", aColumn.Name, aTable.Name)
		}
		seen[key] = struct{}{}
		if aColumn.Type.Kind() == jsondb.KindNull {
			return fmt.Errorf("%w: data type of column %q", jsondb.ErrUnsupported, aColumn.Name)
		}
		if aColumn.MaxLength < 0 {
			return fmt.Errorf("column %q has negative length", aColumn.Name)
		}
		if aColumn.MaxLength > 0 && aColumn.Type != jsondb.TypeVarchar {
			return fmt.Errorf("column %q: only VARCHAR takes a length", aColumn.Name)
		}
		if aColumn.PrimaryKey {
			primaryKeys++
		}
	}
	if primaryKeys > 1 {
		return fmt.Errorf("table %s has multiple PRIMARY KEY columns", aTable.Name)
	}
	return nil
}

func (e *Engine) GetTable(name string) (*jsondb.Table, error) {
	return e.tables.Get(name)
}

func (e *Engine) DropTable(name string) error {
	return e.tables.Drop(name)
}

func (e *Engine) ListTables() ([]string, error) {
	return e.tables.List()
}

// InsertRow validates and appends a single row.
func (e *Engine) InsertRow(aTable *jsondb.Table, aRow jsondb.Row) error {
	return e.InsertRows(aTable, []jsondb.Row{aRow})
}

// InsertRows validates all rows, against the table and against each other,
// before appending any of them. Data and indexes are persisted once.
func (e *Engine) InsertRows(aTable *jsondb.Table, rows []jsondb.Row) error {
	prepared := make([]jsondb.Row, 0, len(rows))
	for _, aRow := range rows {
		normalized, err := normalizeRow(aTable, aRow)
		if err != nil {
			return err
		}
		if err := e.checkUnique(aTable, normalized, aTable.Rows, -1, true); err != nil {
			return err
		}
		if err := e.checkUnique(aTable, normalized, prepared, -1, false); err != nil {
			return err
		}
		prepared = append(prepared, normalized)
	}

	for _, aRow := range prepared {
		aTable.Rows = append(aTable.Rows, aRow)
		e.indexes.OnInsert(aTable, len(aTable.Rows)-1)
	}

	e.logger.Sugar().With("table", aTable.Name, "rows", len(prepared)).Debug("inserted rows")

	return e.persist(aTable)
}

// Predicate selects rows. Mutator returns the new content of a row; it is
// handed a copy it may modify.
type (
	Predicate func(jsondb.Row) bool
	Mutator   func(jsondb.Row) (jsondb.Row, error)
)

// UpdateRows applies mutator to every row matching predicate and returns how
// many rows were updated.
func (e *Engine) UpdateRows(aTable *jsondb.Table, predicate Predicate, mutator Mutator) (int, error) {
	if e.updateMode == UpdateInPlace {
		return e.updateInPlace(aTable, predicate, mutator)
	}
	return e.updateAtomic(aTable, predicate, mutator)
}

func (e *Engine) updateAtomic(aTable *jsondb.Table, predicate Predicate, mutator Mutator) (int, error) {
	var (
		prospective = append([]jsondb.Row(nil), aTable.Rows...)
		changed     []int
	)
	for i, aRow := range aTable.Rows {
		if !predicate(aRow) {
			continue
		}
		mutated, err := mutator(aRow.Clone())
		if err != nil {
			return 0, err
		}
		normalized, err := normalizeRow(aTable, mutated)
		if err != nil {
			return 0, err
		}
		prospective[i] = normalized
		changed = append(changed, i)
	}
	if len(changed) == 0 {
		return 0, nil
	}

	for _, i := range changed {
		if err := e.checkUnique(aTable, prospective[i], prospective, i, false); err != nil {
			return 0, err
		}
	}

	for _, i := range changed {
		before := aTable.Rows[i]
		aTable.Rows[i] = prospective[i]
		e.indexes.OnUpdate(aTable, i, before, prospective[i])
	}

	e.logger.Sugar().With("table", aTable.Name, "rows", len(changed)).Debug("updated rows")

	return len(changed), e.persist(aTable)
}

func (e *Engine) updateInPlace(aTable *jsondb.Table, predicate Predicate, mutator Mutator) (int, error) {
	type change struct {
		position int
		before   jsondb.Row
	}
	var changes []change

	fail := func(err error) (int, error) {
		if len(changes) > 0 {
			e.indexes.RebuildAll(aTable)
		}
		return 0, err
	}

	for i := range aTable.Rows {
		if !predicate(aTable.Rows[i]) {
			continue
		}
		before := aTable.Rows[i].Clone()
		mutated, err := mutator(aTable.Rows[i].Clone())
		if err != nil {
			return fail(err)
		}
		normalized, err := normalizeRow(aTable, mutated)
		if err != nil {
			return fail(err)
		}
		if err := e.checkUnique(aTable, normalized, aTable.Rows, i, false); err != nil {
			return fail(err)
		}
		aTable.Rows[i] = normalized
		changes = append(changes, change{position: i, before: before})
	}
	if len(changes) == 0 {
		return 0, nil
	}

	for _, c := range changes {
		e.indexes.OnUpdate(aTable, c.position, c.before, aTable.Rows[c.position])
	}

	e.logger.Sugar().With("table", aTable.Name, "rows", len(changes)).Debug("updated rows in place")

	return len(changes), e.persist(aTable)
}

// DeleteRows removes every row matching predicate and rebuilds all indexes.
func (e *Engine) DeleteRows(aTable *jsondb.Table, predicate Predicate) (int, error) {
	var positions []int
	for i, aRow := range aTable.Rows {
		if predicate(aRow) {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return 0, nil
	}

	for i := len(positions) - 1; i >= 0; i-- {
		p := positions[i]
		aTable.Rows = append(aTable.Rows[:p], aTable.Rows[p+1:]...)
	}
	e.indexes.RebuildAll(aTable)

	e.logger.Sugar().With("table", aTable.Name, "rows", len(positions)).Debug("deleted rows")

	return len(positions), e.persist(aTable)
}

// CreateIndex builds an index from the current rows and persists it
// together with the updated schema.
func (e *Engine) CreateIndex(aTable *jsondb.Table, name, column string) error {
	idx, err := e.indexes.Create(aTable, name, column)
	if err != nil {
		return err
	}
	if err := e.indexes.Save(aTable, idx); err != nil {
		return err
	}
	return e.tables.SaveSchema(aTable)
}

func (e *Engine) DropIndex(aTable *jsondb.Table, name string) error {
	if err := e.indexes.Drop(aTable, name); err != nil {
		return err
	}
	return e.tables.SaveSchema(aTable)
}

// ReadIndex returns the persisted entries of an index.
func (e *Engine) ReadIndex(table, index string) (map[string][]int, error) {
	return e.files.ReadIndex(table, index)
}

// FlushAll persists data and indexes of every cached table.
func (e *Engine) FlushAll() error {
	for _, aTable := range e.tables.Cached() {
		if err := e.persist(aTable); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) persist(aTable *jsondb.Table) error {
	if err := e.tables.SaveRows(aTable); err != nil {
		return err
	}
	return e.indexes.SaveAll(aTable)
}
