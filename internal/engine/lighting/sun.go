package lighting

import "github.com/chewxy/math32"

// minutesPerDay is the length of the day cycle.
const minutesPerDay = 1440

// Sun holds the directional light terms for the terrain shader.
type Sun struct {
	Ambient  [3]float32
	Diffuse  [3]float32
	Specular [3]float32
}

// SunForTime returns the sun terms for a time of day. Ambient follows a sine
// over the day, lowest at midnight. Diffuse and specular are off at night.
// The armageddon effect turns the whole sun red.
func SunForTime(hour, minute int, night, armageddon bool) Sun {
	if armageddon {
		return Sun{
			Ambient: [3]float32{1, 0, 0},
			Diffuse: [3]float32{1, 0, 0},
		}
	}

	t := float32(minute + hour*60)
	ambient := 0.15 + (math32.Sin((t-360)*2*math32.Pi/minutesPerDay)+1)*0.27

	var on float32 = 1
	if night {
		on = 0
	}
	d := on * (ambient + 0.3)

	return Sun{
		Ambient:  [3]float32{ambient, ambient, ambient},
		Diffuse:  [3]float32{d, d, d},
		Specular: [3]float32{on, on * 0.8, 0},
	}
}
