package utils

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

func Clamp[T Number](value, lower, upper T) T {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}

	return value
}

func InRange[T Number](value, lower, upper T) bool {
	return value >= lower && value <= upper
}
