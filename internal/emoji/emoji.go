package emoji

import (
	"math"

	"github.com/drakos74/forsight/internal/model"
)

// https://unicode.org/emoji/charts/full-emoji-list.html
const (
	HalfEclipse  = "🌓"
	ThirdEclipse = "🌒"
	FullEclipse  = "🌑"
	EclipseFace  = "🌚"
	Comet        = "🪐"

	FirstEclipse = "🌔"
	FullMoon     = "🌕"
	SunFace      = "🌞"
	Star         = "🌟"

	Zero = "🥜"
	Down = "🐞"
	Up   = "🦠"

	DotSnow  = "❄"
	DotFire  = "🔥"
	DotWater = "💧"

	Error = "🚫"
)

// MapToSentiment maps the given float value according to it's sign.
func MapToSentiment(f float64) string {
	emo := Zero
	if f > 0 {
		emo = Up
	} else if f < 0 {
		emo = Down
	}
	return emo
}

// MapConfidence maps the confidence label of a forecast.
func MapConfidence(c model.Confidence) string {
	switch c {
	case model.High:
		return DotFire
	case model.Medium:
		return DotWater
	case model.Low:
		return DotSnow
	}
	return Error
}

// MapDeca maps the decimal order to an emoji
func MapDeca(value float64) string {
	sign := 1.0
	if value < 0 {
		sign = -1
		value = math.Abs(value)
	}

	if value < 0.1 {
		return HalfEclipse
	}

	value *= 10

	d := math.Abs(math.Log10(value))
	return MapValue(sign * d)
}

// MapValue maps the given value to an emoji
// it returns valuable results for values between [-5,5]
func MapValue(value float64) string {
	if value >= 4 {
		return Star
	} else if value >= 3 {
		return SunFace
	} else if value >= 2 {
		return FullMoon
	} else if value >= 1 {
		return FirstEclipse
	} else if value <= -4 {
		return Comet
	} else if value <= -3 {
		return EclipseFace
	} else if value <= -2 {
		return FullEclipse
	} else if value <= -1 {
		return ThirdEclipse
	}
	return HalfEclipse
}
