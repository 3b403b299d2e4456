package service

// pageOffset converts the from/size query pair into a row offset. The
// offset snaps to a whole page boundary: from=7,size=5 starts at row 5.
func pageOffset(from, size int) int {
	return (from / size) * size
}
