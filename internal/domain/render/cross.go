package render

// Swiss cross proportions, in 46ths of the symbol edge.
const (
	crossUnits      = 46.0
	crossBorder     = 7.0
	crossBackground = 6.0
	crossBarLength  = 3.89
	crossBarWidth   = 1.17
)

// CrossRects is the number of rectangles forming the cross glyph.
const CrossRects = 4

// Cross returns the glyph for a symbol of the given edge length: a white
// border square, the black square, then the horizontal and vertical white bars.
func Cross(size float64) [CrossRects]Command {
	unit := size / crossUnits
	center := size / 2

	square := func(edge float64, fill Fill) Command {
		return bar(center, edge, edge, fill)
	}

	return [CrossRects]Command{
		square(crossBorder*unit, White),
		square(crossBackground*unit, Black),
		bar(center, crossBarLength*unit, crossBarWidth*unit, White),
		bar(center, crossBarWidth*unit, crossBarLength*unit, White),
	}
}

func bar(center, width, height float64, fill Fill) Command {
	return Command{
		Kind: KindCross,
		Rect: Rect{X: center - width/2, Y: center - height/2, Width: width, Height: height},
		Fill: fill,
	}
}
