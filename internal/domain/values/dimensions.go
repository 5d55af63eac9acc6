package values

import "fmt"

// Dimensions is the requested (width, height). A zero component means
// "unset": the loader falls back to the default or original size.
type Dimensions struct {
	Width  int32 `json:"width" yaml:"width"`
	Height int32 `json:"height" yaml:"height"`
}

// NewDimensions creates a Dimensions value.
func NewDimensions(width, height int32) Dimensions {
	return Dimensions{Width: width, Height: height}
}

// IsUnset returns true if both components are the unset sentinel.
func (d Dimensions) IsUnset() bool {
	return d.Width == 0 && d.Height == 0
}

// String returns "WxH".
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}
