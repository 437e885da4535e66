// Command vecbench benchmarks and profiles simplevector's allocation strategies.
//
// Usage:
//
//	vecbench push --count 200000 --strategy all
//	vecbench profile --strategy arena --count 5000000
package main

func main() {
	execute()
}
