package render

import (
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"cloudpicker/internal/modules/picker"
	"cloudpicker/internal/modules/ranking"
)

const xlsxSheet = "Clouds"

// WriteXLSX writes the visible clouds as a single-sheet workbook. The
// distance column is empty for clouds without a distance.
func WriteXLSX(w io.Writer, v picker.View, distances map[string]ranking.Distance) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(xlsxSheet)
	if err != nil {
		return err
	}

	header := []interface{}{"Name", "Description", "Provider", "Latitude", "Longitude", "Distance (km)"}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, c := range v.Clouds {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var dist interface{}
		if d, ok := distances[c.Name]; ok && d.Valid {
			dist = int(math.Round(d.Km))
		}
		row := []interface{}{c.Name, c.Description, c.Provider(), c.Latitude, c.Longitude, dist}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.Write(w)
}
