//go:build !race

package scenarios

const raceDetectorEnabled = false
