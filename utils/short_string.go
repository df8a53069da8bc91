package utils

import "fmt"

func ShortenLog(digest string) string {
	index_cut := 8
	if len(digest) <= 8 {
		return digest
	} else if len(digest) <= 16 {
		index_cut = 4
	}
	return fmt.Sprintf("%s...%s", digest[:index_cut], digest[len(digest)-index_cut:])
}
