package scene

import (
	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/geometry"
	"github.com/df07/go-flatland-raytracer/pkg/material"
)

// Light colors, in radiance units before tone mapping
var (
	warmWhite = core.NewColor(490, 490, 490)
	coolSky   = core.NewColor(188, 244, 256)
	pink      = core.NewColor(255, 133, 180)
	paleBlue  = core.NewColor(145, 200, 255)
)

// Albedos of the reflecting and refracting materials
var (
	nearWhite = core.NewColor(254.0/255, 254.0/255, 254.0/255)
	lightGray = core.NewColor(210.0/255, 210.0/255, 210.0/255)
)

// glassIOR is the refractive index of the glass objects
const glassIOR = 1.58

// NewGlassBoxScene creates a refracting square lit by a large disk in the upper right
func NewGlassBoxScene() *Scene {
	s := NewScene("glass-box")
	s.Add(geometry.NewDisk(core.NewVec2(460, -70), 160), material.NewEmissive(warmWhite))
	s.Add(geometry.NewBox(150, 150, 290, 290), material.NewDielectric(glassIOR, nearWhite))
	return s
}

// NewLensScene creates a plano-convex lens between two colored lights
func NewLensScene() *Scene {
	s := NewScene("lens")

	lens := geometry.NewIntersection(
		geometry.NewBox(60, 165, 390, 390),
		geometry.NewDisk(core.NewVec2(225, 168), 126),
	)
	s.Add(geometry.NewDisk(core.NewVec2(90, 70), 57), material.NewEmissive(pink))
	s.Add(geometry.NewDisk(core.NewVec2(-10, -70), 160), material.NewEmissive(coolSky))
	s.Add(lens, material.NewDielectric(glassIOR, nearWhite))
	return s
}

// NewMirrorsScene creates two reflecting blocks and a mirror bar between colored lights
func NewMirrorsScene() *Scene {
	s := NewScene("mirrors")

	s.Add(geometry.NewDisk(core.NewVec2(90, 70), 57), material.NewEmissive(pink))
	s.Add(geometry.NewDisk(core.NewVec2(100, 330), 57), material.NewEmissive(paleBlue))

	s.Add(geometry.NewBox(30, 150, 130, 220), material.NewMirror(nearWhite))
	s.Add(geometry.NewBox(170, 180, 250, 270), material.NewMirror(lightGray))
	s.Add(geometry.NewBox(14, 125, 70, 189), material.NewMirror(nearWhite))
	return s
}

// NewEmitterScene creates a single white disk light in the middle of the image
func NewEmitterScene() *Scene {
	s := NewScene("emitter")
	s.Add(geometry.NewDisk(core.NewVec2(225, 225), 65), material.NewEmissive(warmWhite))
	return s
}

// NewFogScene creates a disk of scattering medium in front of a light
func NewFogScene() *Scene {
	s := NewScene("fog")
	s.Add(geometry.NewDisk(core.NewVec2(460, -70), 160), material.NewEmissive(warmWhite))
	s.Add(geometry.NewDisk(core.NewVec2(200, 240), 110), material.NewMedium(1.0, 4.0, 0.5))
	return s
}

// NewLensPairScene creates a biconvex lens made of two overlapping disks under a wide light
func NewLensPairScene() *Scene {
	s := NewScene("lens-pair")

	lens := geometry.NewIntersection(
		geometry.NewDisk(core.NewVec2(220, 226), 60),
		geometry.NewDisk(core.NewVec2(220, 274), 60),
	)
	s.Add(geometry.NewDisk(core.NewVec2(225, -230), 215), material.NewEmissive(warmWhite))
	s.Add(lens, material.NewDielectric(glassIOR, nearWhite))
	return s
}
