package waste

import (
	"fmt"
	"strings"
)

// ClassCount is the softmax width of the classifier.
const ClassCount = 6

// Labels maps model output indices to waste categories. The order matches
// the label encoding used when the shipped weights were trained and must
// not change while those weights are in use.
var Labels = [ClassCount]string{
	"cardboard",
	"glass",
	"metal",
	"paper",
	"plastic",
	"trash",
}

const (
	BinRecyclable = "Recyclable"
	BinOther      = "Other"

	ServoAngleRecyclable = 90
	ServoAngleOther      = 0
)

var recyclable = map[string]bool{
	"cardboard": true,
	"glass":     true,
	"metal":     true,
	"paper":     true,
	"plastic":   true,
}

// Label returns the category name for a model output index.
func Label(index int) (string, error) {
	if index < 0 || index >= ClassCount {
		return "", fmt.Errorf("class index %d out of range [0,%d)", index, ClassCount)
	}
	return Labels[index], nil
}

// Classify maps a category name to its bin and servo angle. Unknown
// categories fall through to the Other bin, so the function is total.
func Classify(category string) (string, int) {
	if recyclable[strings.ToLower(category)] {
		return BinRecyclable, ServoAngleRecyclable
	}
	return BinOther, ServoAngleOther
}
