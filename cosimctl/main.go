// Cosimctl runs programs on the co-simulated core and converts program images.
package main

import "github.com/sarchlab/cosim/cosimctl/cmd"

func main() {
	cmd.Execute()
}
