package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tvasseur/bourse-data/internal/model"
)

// Snapshot CSV column order: symbol, last, volume, name.
const (
	colSymbol = iota
	colLast
	colVolume
	colName
	snapshotColumns
)

// readSnapshot parses one snapshot file. Every row receives the timestamp
// and market embedded in the file name. The last-price column is kept raw;
// the normalizer coerces it later. Rows whose volume does not parse are
// dropped here, counted, and logged: they carry no usable signal.
func (l *Loader) readSnapshot(path string) ([]model.RawTick, error) {
	market, ts, err := ParseIdentifier(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = snapshotColumns
	r.ReuseRecord = true

	var ticks []model.RawTick
	var dropped int
	first := true

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read snapshot %s: %w", path, err)
		}

		// Skip the header row if present.
		if first {
			first = false
			if record[colSymbol] == "symbol" {
				continue
			}
		}

		volume, err := strconv.ParseFloat(record[colVolume], 64)
		if err != nil {
			dropped++
			continue
		}

		ticks = append(ticks, model.RawTick{
			Time:    ts,
			Symbol:  record[colSymbol],
			LastRaw: record[colLast],
			Volume:  volume,
			Name:    record[colName],
			Market:  market,
		})
	}

	if dropped > 0 {
		l.logger.Debug("dropped rows with unparseable volume",
			"file", path,
			"dropped", dropped,
		)
	}

	return ticks, nil
}
