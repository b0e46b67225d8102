package manager

import (
	"image/color"
	"io"
	"log"
	"reflect"
	"sort"

	"github.com/ironsheep/image-annotate-mcp/internal/annotation"
	"github.com/ironsheep/image-annotate-mcp/internal/history"
)

// Dispatcher runs fn on the goroutine that owns the Manager.
type Dispatcher func(fn func())

// Manager is the canonical annotation document.
type Manager struct {
	models   *annotation.ModelsSet
	history  *history.Stack
	selected annotation.Model
	settings Settings
	logger   *log.Logger

	observers      []observerEntry
	nextObserverID int

	dispatch    Dispatcher
	paletteSize int
	palette     []color.RGBA
	paletteGen  uint64
}

// Option configures a Manager.
type Option func(*Manager)

// WithHistory shares an existing undo stack.
func WithHistory(h *history.Stack) Option {
	return func(m *Manager) { m.history = h }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithSettings replaces DefaultSettings.
func WithSettings(s Settings) Option {
	return func(m *Manager) { m.settings = s }
}

// WithDispatcher sets how background results reach the owning goroutine.
// Without one, background sampling runs inline.
func WithDispatcher(d Dispatcher) Option {
	return func(m *Manager) { m.dispatch = d }
}

// WithPaletteSize sets how many colors SampleBackground extracts.
func WithPaletteSize(n int) Option {
	return func(m *Manager) { m.paletteSize = n }
}

// New creates an empty document.
func New(opts ...Option) *Manager {
	m := &Manager{
		models:      annotation.NewModelsSet(),
		settings:    DefaultSettings(),
		paletteSize: 6,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.history == nil {
		m.history = history.New(0)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard, "", 0)
	}
	return m
}

// History returns the undo stack.
func (m *Manager) History() *history.Stack { return m.history }

// Models returns every live model in draw order, bottom first.
func (m *Manager) Models() []annotation.Model {
	return annotation.SortedByZ(m.models.All(), false)
}

// Get returns the committed model with id.
func (m *Manager) Get(id annotation.ID) (annotation.Model, bool) {
	return m.models.Get(id)
}

// Contains reports whether id is committed.
func (m *Manager) Contains(id annotation.ID) bool {
	return m.models.Contains(id)
}

// MaxZPosition returns the highest committed draw-order key.
func (m *Manager) MaxZPosition() float64 {
	return m.models.MaxZPosition()
}

// Add inserts models as a fresh load. No history is recorded.
func (m *Manager) Add(models ...annotation.Model) {
	var added []annotation.Model
	for _, model := range models {
		if model == nil {
			continue
		}
		m.models.Update(model)
		added = append(added, model)
	}
	m.logger.Printf("[manager] loaded %d models", len(added))
	m.notifyChanged(added)
}

// Update inserts or replaces models and records one undo action for the batch.
func (m *Manager) Update(models ...annotation.Model) {
	m.apply("update", upserts(models), true)
}

// UpdateUnrecorded inserts or replaces models without touching history.
func (m *Manager) UpdateUnrecorded(models ...annotation.Model) {
	m.apply("update", upserts(models), false)
}

// Delete removes the models with the given ids and records one undo action.
// Unknown ids are ignored.
func (m *Manager) Delete(ids ...annotation.ID) {
	m.apply("delete", removals(ids), true)
}

// DeleteUnrecorded removes models without touching history.
func (m *Manager) DeleteUnrecorded(ids ...annotation.ID) {
	m.apply("delete", removals(ids), false)
}

// DeleteSelected deletes the current selection, if committed.
func (m *Manager) DeleteSelected() {
	if m.selected == nil {
		return
	}
	m.Delete(m.selected.Meta().ID)
}

// Reset replaces the whole document with models and forgets all history.
func (m *Manager) Reset(models ...annotation.Model) {
	var ids []annotation.ID
	for _, old := range m.models.All() {
		ids = append(ids, old.Meta().ID)
	}
	m.models.Clear()
	m.notifyRemoved(ids)
	m.Deselect()
	m.history.Clear()
	m.Add(models...)
}

// Undo reverts the most recent recorded mutation.
func (m *Manager) Undo() bool { return m.history.PerformUndo() }

// Redo reapplies the most recently undone mutation.
func (m *Manager) Redo() bool { return m.history.PerformRedo() }

// BringToFront commits model with a draw-order key above every other model
// and returns the bumped value. Models already on top, and rect kinds that do
// not take part in z ordering, are returned unchanged.
func (m *Manager) BringToFront(model annotation.Model) annotation.Model {
	if !annotation.BumpsZ(model) {
		return model
	}
	maxZ := m.models.MaxZPosition()
	if model.Meta().ZPosition >= maxZ {
		return model
	}
	bumped := annotation.WithZPosition(model, maxZ+1)
	m.Update(bumped)
	return bumped
}

// NextNumberValue is the value a newly placed marker receives.
func (m *Manager) NextNumberValue() int {
	n := 0
	for _, model := range m.models.All() {
		if _, ok := model.(annotation.Number); ok {
			n++
		}
	}
	return n + 1
}

// Defaults returns the stamp for a new model drawn on top of the document.
func (m *Manager) Defaults() annotation.Defaults {
	z := 0.0
	if m.models.Len() > 0 {
		z = m.models.MaxZPosition() + 1
	}
	return annotation.Defaults{
		Color:     m.settings.Color,
		LineWidth: m.settings.LineWidth,
		ZPosition: z,
		TextStyle: m.settings.TextStyle,
	}
}

type op struct {
	upsert annotation.Model
	remove annotation.ID
}

func upserts(models []annotation.Model) []op {
	ops := make([]op, 0, len(models))
	for _, model := range models {
		if model != nil {
			ops = append(ops, op{upsert: model})
		}
	}
	return ops
}

func removals(ids []annotation.ID) []op {
	ops := make([]op, 0, len(ids))
	for _, id := range ids {
		ops = append(ops, op{remove: id})
	}
	return ops
}

func (o op) id() annotation.ID {
	if o.upsert != nil {
		return o.upsert.Meta().ID
	}
	return o.remove
}

// snapshot is the state of one id before a batch; model is nil when the id
// did not exist.
type snapshot struct {
	id    annotation.ID
	model annotation.Model
}

// apply is the single mutation path. It runs ops, renumbers markers, notifies
// observers, refreshes the selection, and when record is set registers one
// undo action restoring every touched id.
func (m *Manager) apply(name string, ops []op, record bool) {
	var before []snapshot
	seen := make(map[annotation.ID]bool)
	capture := func(id annotation.ID) {
		if seen[id] {
			return
		}
		seen[id] = true
		prev, _ := m.models.Get(id)
		before = append(before, snapshot{id: id, model: prev})
	}

	run := func(ops []op) {
		for _, o := range ops {
			capture(o.id())
			if o.upsert != nil {
				m.models.Update(o.upsert)
			} else {
				m.models.Remove(o.remove)
			}
		}
	}
	run(ops)
	run(m.renumberOps())

	var changed []annotation.Model
	var removed []annotation.ID
	var effective []snapshot
	for _, s := range before {
		cur, ok := m.models.Get(s.id)
		switch {
		case !ok && s.model == nil:
			continue
		case !ok:
			removed = append(removed, s.id)
		case reflect.DeepEqual(cur, s.model):
			continue
		default:
			changed = append(changed, cur)
		}
		effective = append(effective, s)
	}
	if len(effective) == 0 {
		return
	}

	m.logger.Printf("[manager] %s: %d changed, %d removed (record=%v)", name, len(changed), len(removed), record)
	m.notifyChanged(changed)
	m.notifyRemoved(removed)
	m.refreshSelection(removed)

	if record {
		m.history.AddUndo(name, func() { m.restore(name, effective) })
	}
}

// restore puts every snapshot back through apply, which records the inverse.
func (m *Manager) restore(name string, snaps []snapshot) {
	ops := make([]op, 0, len(snaps))
	for _, s := range snaps {
		if s.model == nil {
			ops = append(ops, op{remove: s.id})
		} else {
			ops = append(ops, op{upsert: s.model})
		}
	}
	m.apply(name, ops, true)
}

// renumberOps returns the updates that make marker values 1..n, ordered by
// current value, then draw order, then id. Contiguous markers yield none.
func (m *Manager) renumberOps() []op {
	var numbers []annotation.Number
	for _, model := range m.models.All() {
		if n, ok := model.(annotation.Number); ok {
			numbers = append(numbers, n)
		}
	}
	sort.Slice(numbers, func(i, j int) bool {
		a, b := numbers[i], numbers[j]
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		if a.ZPosition != b.ZPosition {
			return a.ZPosition < b.ZPosition
		}
		return a.ID < b.ID
	})

	var ops []op
	for i, n := range numbers {
		if n.Value != i+1 {
			n.Value = i + 1
			ops = append(ops, op{upsert: n})
		}
	}
	return ops
}

// refreshSelection keeps the selected snapshot in line with the store after
// a committed change. A preview selection that never reached the store is
// left alone unless this batch removed its id.
func (m *Manager) refreshSelection(removed []annotation.ID) {
	if m.selected == nil {
		return
	}
	id := m.selected.Meta().ID
	for _, r := range removed {
		if r == id {
			m.Deselect()
			return
		}
	}
	cur, ok := m.models.Get(id)
	if ok && !reflect.DeepEqual(cur, m.selected) {
		prev := m.selected
		m.selected = cur
		m.notifySelection(prev, cur)
	}
}
