// Command widecol decodes wide-column rows into tuples and resolves store
// client configuration.
package main

func main() {
	Execute()
}
