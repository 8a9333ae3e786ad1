package core

import (
	"math"
	"strconv"
)

var suffixes = [5]string{"B", "KB", "MB", "GB", "TB"}

func round(val float64, roundOn float64, places int) (newVal float64) {
	var round float64
	pow := math.Pow(10, float64(places))
	digit := pow * val
	_, div := math.Modf(digit)
	if div >= roundOn {
		round = math.Ceil(digit)
	} else {
		round = math.Floor(digit)
	}
	return round / pow
}

func HumanFileSize(size int64) string {
	if size < 1 {
		return "0 B"
	}
	base := math.Log(float64(size)) / math.Log(1024)
	exponent := int(math.Floor(base))
	if exponent >= len(suffixes) {
		exponent = len(suffixes) - 1
	}
	value := round(float64(size)/math.Pow(1024, float64(exponent)), .5, 2)
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + suffixes[exponent]
}
