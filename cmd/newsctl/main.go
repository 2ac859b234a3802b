// Command newsctl runs entity extraction and trend analysis from the
// command line, using the same configuration as the server.
package main

func main() {
	Execute()
}
