package constants

// Canonical takeoff columns.
const (
	ColItemNumber      = "item_number"
	ColItemDescription = "item_description"
	ColMemberMark      = "member_mark"
	ColPartLabel       = "part_label"
	ColDrawingRef      = "drawing_ref"
	ColShapeSize       = "shape_size"
	ColQuantity        = "quantity"
	ColLength          = "length"
	ColEnd1            = "end1"
	ColEnd2            = "end2"
	ColHoleType        = "hole_type"
	ColHoleCount       = "hole_count"
	ColWeldType        = "weld_type"
	ColConnectionType  = "connection_type"
	ColConnectionCount = "connection_count"
	ColPrep            = "prep"
	ColCoating         = "coating"
	ColGalvanized      = "galvanized"
	ColNotes           = "notes"
)

// ColumnAlias maps a canonical column to the header spellings vendors use.
type ColumnAlias struct {
	Column   string
	Label    string
	Required bool
	Aliases  []string
}

// TakeoffColumns returns the header alias table in report order. Aliases are
// compared after lowercasing and dropping spaces and underscores.
func TakeoffColumns() []ColumnAlias {
	return []ColumnAlias{
		{Column: ColItemNumber, Label: "Item Number", Required: true,
			Aliases: []string{"Item #", "Item Number", "Item No", "Item", "Item_Number", "Bid Item"}},
		{Column: ColItemDescription, Label: "Item Description",
			Aliases: []string{"Item Description", "Description", "Item Name", "Desc"}},
		{Column: ColMemberMark, Label: "Member Mark",
			Aliases: []string{"Member Mark", "Mark", "Piece Mark", "Member"}},
		{Column: ColPartLabel, Label: "Part Label",
			Aliases: []string{"Part Label", "Part", "Label", "Part Name"}},
		{Column: ColDrawingRef, Label: "Drawing Ref",
			Aliases: []string{"Drawing Ref", "Dwg", "Dwg Ref", "Drawing", "Page", "Sheet"}},
		{Column: ColShapeSize, Label: "Shape/Size", Required: true,
			Aliases: []string{"Shape/Size", "Shape Size", "Size", "Shape", "Section"}},
		{Column: ColQuantity, Label: "Quantity", Required: true,
			Aliases: []string{"Quantity", "Qty", "Pieces", "Pcs", "Count"}},
		{Column: ColLength, Label: "Length", Required: true,
			Aliases: []string{"Length", "Length (ft)", "Length Ft", "Len", "Length_Feet"}},
		{Column: ColEnd1, Label: "End 1",
			Aliases: []string{"End 1", "End1", "End 1 Labor", "End1 Labor", "End 1 Cut"}},
		{Column: ColEnd2, Label: "End 2",
			Aliases: []string{"End 2", "End2", "End 2 Labor", "End2 Labor", "End 2 Cut"}},
		{Column: ColHoleType, Label: "Hole Type",
			Aliases: []string{"Hole Type", "Holes Type", "Hole"}},
		{Column: ColHoleCount, Label: "Hole Count",
			Aliases: []string{"Hole Count", "Holes", "Hole Qty", "# Holes", "Number of Holes"}},
		{Column: ColWeldType, Label: "Weld Type",
			Aliases: []string{"Weld Type", "Weld", "Welding"}},
		{Column: ColConnectionType, Label: "Connection Type",
			Aliases: []string{"Connection Type", "Connection", "Connx", "Connx Type", "Conn Type"}},
		{Column: ColConnectionCount, Label: "Connection Count",
			Aliases: []string{"Connection Count", "Connx Qty", "Connection Qty", "Conn Qty", "# Connections"}},
		{Column: ColPrep, Label: "Prep",
			Aliases: []string{"Prep", "Surface Prep", "Prep Type"}},
		{Column: ColCoating, Label: "Coating",
			Aliases: []string{"Coating", "Finish", "Paint"}},
		{Column: ColGalvanized, Label: "Galvanized",
			Aliases: []string{"Galvanized", "Galv", "Galvanize"}},
		{Column: ColNotes, Label: "Notes",
			Aliases: []string{"Notes", "Note", "Remarks", "Comments"}},
	}
}
