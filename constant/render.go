package constant

// Draw orders (sorting orders): higher draws on top
const (
	// DefaultOrder is the mid draw order used when a scene has no explicit value
	DefaultOrder = 5

	// RestOrder is the draw order of an item lying in the palette or a slot
	RestOrder = 5

	// DragOrder brings a held item to the front
	DragOrder = 10
)

// Terminal viewport
const (
	// CellsPerUnitX is the horizontal terminal cells per scene unit
	CellsPerUnitX = 4.0

	// CellsPerUnitY is the vertical terminal rows per scene unit
	CellsPerUnitY = 2.0

	// SceneHalfWidth is the horizontal half extent of the visible scene
	SceneHalfWidth = 14.0

	// SceneHalfHeight is the vertical half extent of the visible scene
	SceneHalfHeight = 6.0

	// TextRows is the number of rows reserved for narration below the scene
	TextRows = 4
)
