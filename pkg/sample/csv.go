package sample

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/itohio/pmactab/pkg/config"
	"github.com/itohio/pmactab/pkg/errs"
)

// DerivedHeader is the header row written by WriteDerived.
var DerivedHeader = []string{
	"timeS", "speedRpm", "torqueMeasuredNm",
	"voltageDAxisVpeak", "voltageQAxisVpeak", "currentDAxisApeak", "currentQAxisApeak",
	"electricalFrequencyRads", "fluxLinkageDAxisWb", "fluxLinkageQAxisWb", "torqueElectromagneticNm",
	"inductanceDAxisH", "inductanceQAxisH", "inductanceDAxisVoltageH", "inductanceQAxisVoltageH", "torqueIdqNm",
	"currentDAxisArms", "currentQAxisArms", "voltageDAxisVrms", "voltageQAxisVrms",
}

// LoadFile opens path and loads samples from it with Load.
func LoadFile(path string, cols config.ColumnsConfig) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(err, errs.KindInput, "sample.LoadFile", "failed to open %s", path)
	}
	defer f.Close()

	return Load(bufio.NewReader(f), cols)
}

// Load reads a CSV log with a header row and maps the configured columns onto
// Sample fields. Extra columns are ignored. A missing column or an
// unparsable cell fails the whole load; nothing is returned partially.
func Load(r io.Reader, cols config.ColumnsConfig) ([]Sample, error) {
	const op = "sample.Load"

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errs.Input(op, "empty input, expected a header row")
		}
		return nil, errs.Wrap(err, errs.KindInput, op, "failed to read header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	wanted := []string{cols.Time, cols.Speed, cols.Torque, cols.VoltageD, cols.VoltageQ, cols.CurrentD, cols.CurrentQ}
	pos := make([]int, len(wanted))
	var missing []string
	for i, name := range wanted {
		idx, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		pos[i] = idx
	}
	if len(missing) > 0 {
		return nil, errs.Input(op, "required columns not found: %s", strings.Join(missing, ", "))
	}

	var samples []Sample
	var vals [7]float64
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.Wrap(err, errs.KindInput, op, "line %d", row)
		}

		for i, p := range pos {
			if p >= len(rec) {
				return nil, errs.Input(op, "line %d: column %q missing", row, wanted[i])
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[p]), 64)
			if err != nil {
				return nil, errs.Wrap(err, errs.KindInput, op, "line %d: column %q", row, wanted[i])
			}
			vals[i] = v
		}

		samples = append(samples, Sample{
			Time:           vals[0],
			SpeedRPM:       vals[1],
			TorqueMeasured: vals[2],
			Ud:             vals[3],
			Uq:             vals[4],
			Id:             vals[5],
			Iq:             vals[6],
		})
	}

	return samples, nil
}

// WriteDerived writes samples as CSV with DerivedHeader.
func WriteDerived(w io.Writer, samples []DerivedSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DerivedHeader); err != nil {
		return err
	}

	row := make([]string, len(DerivedHeader))
	for _, s := range samples {
		vals := [...]float64{
			s.Time, s.SpeedRPM, s.TorqueMeasured,
			s.Ud, s.Uq, s.Id, s.Iq,
			s.OmegaE, s.PsiD, s.PsiQ, s.TorqueEM,
			s.LdFlux, s.LqFlux, s.LdVoltage, s.LqVoltage, s.TorqueIdq,
			s.IdRMS, s.IqRMS, s.UdRMS, s.UqRMS,
		}
		for i, v := range vals {
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
