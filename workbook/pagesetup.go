package workbook

// Orientation is the printed page orientation.
type Orientation int

const (
	OrientationDefault Orientation = iota
	OrientationPortrait
	OrientationLandscape
)

// String returns the attribute value, or "" for the default.
func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "portrait"
	case OrientationLandscape:
		return "landscape"
	default:
		return ""
	}
}

// ParseOrientation maps an attribute value to an orientation.
func ParseOrientation(s string) Orientation {
	switch s {
	case "portrait":
		return OrientationPortrait
	case "landscape":
		return OrientationLandscape
	default:
		return OrientationDefault
	}
}

// PageSetup holds print settings.
type PageSetup struct {
	Orientation Orientation
	// PaperSize is the paper code; 0 leaves the application default.
	PaperSize int
	FitToPage bool
	// FitToHeight and FitToWidth are page counts, used when FitToPage is set.
	FitToHeight int
	FitToWidth  int
	// Scale is a percentage.
	Scale int

	HorizontalCentered bool
	VerticalCentered   bool
}

// DefaultPageSetup returns settings that produce no pageSetup element.
func DefaultPageSetup() PageSetup {
	return PageSetup{FitToHeight: 1, FitToWidth: 1, Scale: 100}
}

// IsDefault reports whether the page setup needs no pageSetup element.
func (p PageSetup) IsDefault() bool {
	return p.Orientation == OrientationDefault && p.PaperSize == 0 && !p.FitToPage &&
		(p.Scale == 0 || p.Scale == 100)
}

// PageMargins are in inches.
type PageMargins struct {
	Left, Right, Top, Bottom, Header, Footer float64
}

// DefaultPageMargins returns the margins written for a new sheet.
func DefaultPageMargins() PageMargins {
	return PageMargins{Left: 0.75, Right: 0.75, Top: 1, Bottom: 1, Header: 0.5, Footer: 0.5}
}

// HeaderFooterText is one of the six header/footer slots.
type HeaderFooterText struct {
	Text string
	// Font is "name,style"; empty uses the default font.
	Font string
	// Size in points; 0 leaves the size unset.
	Size int
	// Color is a hex RGB code; empty uses the default color.
	Color string
}

// HeaderFooterSection is a header or a footer.
type HeaderFooterSection struct {
	Left, Center, Right HeaderFooterText
}

// IsEmpty reports whether no slot has text.
func (s HeaderFooterSection) IsEmpty() bool {
	return s.Left.Text == "" && s.Center.Text == "" && s.Right.Text == ""
}

// HeaderFooter holds the odd-page header and footer.
type HeaderFooter struct {
	Header HeaderFooterSection
	Footer HeaderFooterSection
}

// IsEmpty reports whether all six slots are empty.
func (h HeaderFooter) IsEmpty() bool {
	return h.Header.IsEmpty() && h.Footer.IsEmpty()
}
