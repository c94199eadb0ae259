package sstable

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

// serialize a uint32 vector to file as a column vector
func Uint32VectorSerialize(v []uint32, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	if len(v) == 0 {
		return nil
	}
	// write the vector shape
	out.WriteString(fmt.Sprintf("%d,%d\n", len(v), 1))

	for i, val := range v {
		if val != 0 {
			out.WriteString(fmt.Sprintf("%d,%d,%d\n", i, 0, val))
		}
	}
	return nil
}

// deserialize a uint32 vector from file
func Uint32VectorDeserialize(fn string) ([]uint32, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lineIdx := 0
	var tmp []uint32

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		txt := scanner.Text()
		if lineIdx == 0 {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, fmt.Errorf("vector corrupted, shape not found: %s", txt)
			}
			row, err := strconv.ParseUint(shape[0], 10, 32)
			if err != nil {
				return nil, err
			}
			tmp = make([]uint32, uint32(row))
			lineIdx += 1
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			log.Infof("data corrupted, row %d, data %s",
				lineIdx, txt)
			continue
		}
		ridx, err := strconv.ParseUint(value[0], 10, 32)
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseUint(value[2], 10, 32)
		if err != nil {
			return nil, err
		}
		tmp[uint32(ridx)] = uint32(val)

		lineIdx += 1
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tmp, nil
}
