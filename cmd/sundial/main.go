// Command sundial draws the hour lines, shadow envelopes and
// equation-of-time loops of a sundial for a given wall and location.
package main

import "github.com/harfang-mgf/sundial/cmd/sundial/cmd"

func main() {
	cmd.Execute()
}
