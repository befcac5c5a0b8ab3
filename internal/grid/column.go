package grid

// Align is the horizontal alignment hint for a column.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// RenderFunc produces displayable cell content for a value. index is the
// row's position on the current page.
type RenderFunc[R Record] func(value any, row R, index int) string

// Column describes one displayed field. Columns are sortable unless
// Unsortable is set.
type Column[R Record] struct {
	Key        string        `json:"key"` // field name or dotted path
	Label      string        `json:"label"`
	Unsortable bool          `json:"unsortable,omitempty"`
	Render     RenderFunc[R] `json:"-"`
	Align      Align         `json:"align,omitempty"`
	Width      string        `json:"width,omitempty"` // size hint, e.g. "120px" or "20%"
}

// Sortable reports whether clicking the column header may sort by it.
func (c Column[R]) Sortable() bool {
	return !c.Unsortable
}

// Cell returns the display content for row at page position index.
func (c Column[R]) Cell(row R, index int) string {
	value := row.Field(c.Key)
	if c.Render != nil {
		return c.Render(value, row, index)
	}
	return Stringify(value)
}

// columnByKey returns the column with the given key.
func columnByKey[R Record](columns []Column[R], key string) (Column[R], bool) {
	for _, col := range columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[R]{}, false
}
