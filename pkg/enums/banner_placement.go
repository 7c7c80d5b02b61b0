package enums

// BannerPlacement identifies where a promotional banner is rendered.
type BannerPlacement string

const (
	BannerPlacementMain BannerPlacement = "main"
	BannerPlacementGrid BannerPlacement = "grid"
)

func (b BannerPlacement) String() string {
	return string(b)
}

// Valid reports whether the placement is one the storefront understands.
func (b BannerPlacement) Valid() bool {
	return b == BannerPlacementMain || b == BannerPlacementGrid
}
