// Command takeoutsort organizes a Google Photos Takeout export into a
// year/date folder tree.
package main

func main() {
	Execute()
}
