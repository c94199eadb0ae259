package dyad

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
)

// Set holds the (user, item) pairs to be scored. Ids are 1-based
// dense indices into the per-entity parameter matrices.
type Set struct {
	Users []uint32
	Items []uint32
}

// number of dyads
func (this *Set) Len() int {
	return len(this.Users)
}

// load dyads from file, the file format should be like:
// [userId itemId]
// one pair per line. the function will panic if userId or
// itemId cannot be parsed to uint32
func (this *Set) Load(fn string) {
	f, err := os.Open(fn)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		pair := scanner.Text()
		vals := strings.Fields(pair)
		if len(vals) != 2 {
			log.Printf("bad dyad: %s", pair)
			continue
		}

		userId, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			panic(err)
		}

		itemId, err := strconv.ParseUint(vals[1], 10, 32)
		if err != nil {
			panic(err)
		}

		this.Users = append(this.Users, uint32(userId))
		this.Items = append(this.Items, uint32(itemId))
	}

	log.Printf("number of dyads %d", this.Len())
}
