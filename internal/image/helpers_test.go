package image

type rgba [4]uint8

func pixel(b *Buf, x, y int) rgba {
	var c rgba
	copy(c[:], b.Data()[(y*b.Width()+x)*bytesPerPixel:])
	return c
}

func setPixel(b *Buf, x, y int, c rgba) {
	copy(b.Data()[(y*b.Width()+x)*bytesPerPixel:], c[:])
}

func fill(b *Buf, c rgba) {
	for y := range b.Height() {
		for x := range b.Width() {
			setPixel(b, x, y, c)
		}
	}
}
