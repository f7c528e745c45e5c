// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "math"

// luminance computes the ITU-R BT.601 luma weighting.
func luminance(r, g, b float64) float64 {
	return math.Round(0.299*r + 0.587*g + 0.114*b)
}

// RGBA is a plain 4-channel 8-bit color value, used by the blend and
// colorspace helpers below.
type RGBA struct {
	R, G, B, A uint8
}

// alphaBlend composes src over dst at the given opacity (0..255), per the
// short-circuit and rounding rules.
func alphaBlend(src, dst RGBA, opacity uint8) RGBA {
	if src.A == 255 && opacity == 255 {
		return src
	}
	if src.A == 0 && opacity == 255 {
		return dst
	}

	a := (float64(src.A) / 255) * (float64(opacity) / 255)

	blendChan := func(s, d uint8) uint8 {
		v := math.Round(float64(s)*a) + math.Round(float64(d)*(1-a))
		return clampUint8(v)
	}
	return RGBA{
		R: blendChan(src.R, dst.R),
		G: blendChan(src.G, dst.G),
		B: blendChan(src.B, dst.B),
		A: blendChan(src.A, dst.A),
	}
}

func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rgbToHsl converts 0..255 RGB to HSL with h in [0,360), s,l in [0,1].
func rgbToHsl(r, g, b uint8) (h, s, l float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	case bf:
		h = (rf-gf)/d + 4
	}
	h *= 60
	return h, s, l
}

func hueToRgb(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// hslToRgb converts HSL (h in [0,360), s,l in [0,1]) back to 0..255 RGB.
func hslToRgb(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := clampUint8(math.Round(l * 255))
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hn := h / 360

	r = clampUint8(math.Round(hueToRgb(p, q, hn+1.0/3) * 255))
	g = clampUint8(math.Round(hueToRgb(p, q, hn) * 255))
	b = clampUint8(math.Round(hueToRgb(p, q, hn-1.0/3) * 255))
	return
}

// hsvToRgb converts HSV (h in [0,360), s,v in [0,1]) to 0..255 RGB.
func hsvToRgb(h, s, v float64) (r, g, b uint8) {
	c := v * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var rf, gf, bf float64
	switch {
	case hp < 1:
		rf, gf, bf = c, x, 0
	case hp < 2:
		rf, gf, bf = x, c, 0
	case hp < 3:
		rf, gf, bf = 0, c, x
	case hp < 4:
		rf, gf, bf = 0, x, c
	case hp < 5:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}
	m := v - c
	r = clampUint8(math.Round((rf + m) * 255))
	g = clampUint8(math.Round((gf + m) * 255))
	b = clampUint8(math.Round((bf + m) * 255))
	return
}

// cmykToRgb converts CMYK (each in [0,1]) to 0..255 RGB.
func cmykToRgb(c, m, y, k float64) (r, g, b uint8) {
	r = clampUint8(255 * (1 - c) * (1 - k))
	g = clampUint8(255 * (1 - m) * (1 - k))
	b = clampUint8(255 * (1 - y) * (1 - k))
	return
}

// D65 reference white.
const (
	refWhiteX = 95.047
	refWhiteY = 100.000
	refWhiteZ = 108.883
)

func srgbToLinear(c float64) float64 {
	c /= 255
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSrgb(c float64) float64 {
	var v float64
	if c <= 0.0031308 {
		v = c * 12.92
	} else {
		v = 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	return v * 255
}

// rgbToXyz converts 0..255 sRGB to CIE XYZ (D65), scaled to [0,100].
func rgbToXyz(r, g, b uint8) (x, y, z float64) {
	rl := srgbToLinear(float64(r))
	gl := srgbToLinear(float64(g))
	bl := srgbToLinear(float64(b))

	x = (rl*0.4124 + gl*0.3576 + bl*0.1805) * 100
	y = (rl*0.2126 + gl*0.7152 + bl*0.0722) * 100
	z = (rl*0.0193 + gl*0.1192 + bl*0.9505) * 100
	return
}

// xyzToRgb converts CIE XYZ (scaled to [0,100]) back to 0..255 sRGB.
func xyzToRgb(x, y, z float64) (r, g, b uint8) {
	xf, yf, zf := x/100, y/100, z/100

	rl := xf*3.2406 + yf*-1.5372 + zf*-0.4986
	gl := xf*-0.9689 + yf*1.8758 + zf*0.0415
	bl := xf*0.0557 + yf*-0.2040 + zf*1.0570

	r = clampUint8(clampFloat(linearToSrgb(rl), 0, 255))
	g = clampUint8(clampFloat(linearToSrgb(gl), 0, 255))
	b = clampUint8(clampFloat(linearToSrgb(bl), 0, 255))
	return
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116
}

func labFInv(t float64) float64 {
	if t*t*t > 0.008856 {
		return t * t * t
	}
	return (t - 16.0/116) / 7.787
}

// xyzToLab converts CIE XYZ (scaled to [0,100]) to CIE L*a*b*.
func xyzToLab(x, y, z float64) (l, a, b float64) {
	fx := labF(x / refWhiteX)
	fy := labF(y / refWhiteY)
	fz := labF(z / refWhiteZ)

	l = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return
}

// labToXyz converts CIE L*a*b* back to CIE XYZ (scaled to [0,100]).
func labToXyz(l, a, b float64) (x, y, z float64) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	x = refWhiteX * labFInv(fx)
	y = refWhiteY * labFInv(fy)
	z = refWhiteZ * labFInv(fz)
	return
}
