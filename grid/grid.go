/*
Package grid implements the icon grid addressing model.

Regular icons 0 to 1450 are laid out 21 columns wide in cells of 80 by
30 pixels, each cell holding a normal sprite in the left 40 pixels and
its shiny variant in the right 40. Because of platform image size
limits the grid is split across up to six physical sheets; a column
past 10 or a row past the 24/32 thresholds bumps the sheet index and
rebases the local column/row.

Egg icons start at 1451 and are laid out 18 columns wide in cells of 30
by 32 pixels on a single sheet. Indices above 1872 use an offset of
1442 instead of 1451, a leftover from a historical renumbering of the
asset table. Both regimes are kept exactly as the live table expects.
*/
package grid

const (
	// Regular icon geometry.
	RegularColumns    = 21
	RegularCellWidth  = 80
	RegularCellHeight = 30
	SpriteWidth       = RegularCellWidth / 2
	RegularMax        = 1450

	// Egg icon geometry.
	EggColumns    = 18
	EggCellWidth  = 30
	EggCellHeight = 32
	EggBase       = 1451

	// Eggs above this index were renumbered and use eggAltBase.
	EggRenumber = 1872
	eggAltBase  = 1442

	// Sheet split thresholds.
	splitColumn  = 10
	splitRow     = 24
	splitRowWrap = 32

	// NumSheets is how many physical regular sheets exist; the last
	// one is a placeholder with no uploaded asset yet.
	NumSheets = 6
)

// Rect is a pixel rectangle within a sheet.
type Rect struct {
	X, Y, Width, Height int
}

// RegularAddress locates one regular icon: its grid position, the
// physical sheet it lives on with the column/row local to that sheet,
// and the pixel rectangles of the normal and shiny sprites.
type RegularAddress struct {
	Index       int
	Column, Row int
	Sheet       int
	SheetColumn int
	SheetRow    int
	Normal      Rect
	Shiny       Rect
}

// EggAddress locates one egg icon on the single egg sheet.
type EggAddress struct {
	Index       int
	LocalIndex  int
	Column, Row int
	Sprite      Rect
}

// IsEgg reports whether index falls in the egg domain.
func IsEgg(index int) bool {
	return index > RegularMax
}

// Regular computes the address of a regular icon. The caller is
// expected to pass an index in [0, RegularMax]; larger values belong
// to the egg domain.
func Regular(index int) RegularAddress {
	column := index % RegularColumns
	row := index / RegularColumns

	sheet := 1
	sheetColumn := column
	sheetRow := row

	if column > splitColumn {
		sheet++
		sheetColumn = column - splitColumn - 1
	}
	if row > splitRow {
		sheet += 2
		sheetRow = row - splitRow - 1
	}
	if sheetRow > splitRowWrap {
		sheet += 2
		sheetRow -= splitRowWrap + 1
	}

	y := row * RegularCellHeight

	return RegularAddress{
		Index:       index,
		Column:      column,
		Row:         row,
		Sheet:       sheet,
		SheetColumn: sheetColumn,
		SheetRow:    sheetRow,
		Normal:      Rect{column * RegularCellWidth, y, SpriteWidth, RegularCellHeight},
		Shiny:       Rect{column*RegularCellWidth + SpriteWidth, y, SpriteWidth, RegularCellHeight},
	}
}

// Egg computes the address of an egg icon. The caller is expected to
// pass an index >= EggBase.
func Egg(index int) EggAddress {
	local := index - EggBase
	if index > EggRenumber {
		local = index - eggAltBase
	}

	column := local % EggColumns
	row := local / EggColumns

	return EggAddress{
		Index:      index,
		LocalIndex: local,
		Column:     column,
		Row:        row,
		Sprite:     Rect{column * EggCellWidth, row * EggCellHeight, EggCellWidth, EggCellHeight},
	}
}

var sheetAssets = map[int]string{
	1: "17134745575",
	2: "17134749969",
	3: "17134753859",
	4: "17134757872",
	5: "17134761227",
	6: "0",
}

const eggSheetAsset = "13039987315"

// SheetAsset returns the remote asset reference for a regular sheet
// index. The second return value is false when the sheet has no
// configured asset; display layers conventionally render "Unknown".
func SheetAsset(sheet int) (string, bool) {
	id, ok := sheetAssets[sheet]
	return id, ok
}

// EggSheetAsset returns the remote asset reference of the egg sheet.
func EggSheetAsset() string {
	return eggSheetAsset
}
