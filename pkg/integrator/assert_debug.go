//go:build debug
// +build debug

package integrator

import "fmt"

// checkContribution reports illumination terms that came out negative
func checkContribution(term string, total float32, factors ...float32) {
	if total < 0 {
		fmt.Printf("[DEBUG] %s light: factors %v gave %f < 0\n", term, factors, total)
	}
}
