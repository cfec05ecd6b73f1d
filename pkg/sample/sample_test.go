package sample

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/pmactab/pkg/config"
	"github.com/itohio/pmactab/pkg/errs"
)

func defaultColumns() config.ColumnsConfig {
	return config.Default().Data.Columns
}

const validCSV = `time_s,speed_rpm,torque_nm,ud_vpk,uq_vpk,id_apk,iq_apk,dc_bus_v
0.000,1500,10.5,-12.0,40.0,-5.0,50.0,400
0.001,1500,10.7,-12.5,40.5,-6.0,51.0,400
0.002,-1500, 10.9 ,-13.0,41.0,-7.0,52.0,401
`

func TestLoad_Valid(t *testing.T) {
	samples, err := Load(strings.NewReader(validCSV), defaultColumns())
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, Sample{
		Time:           0,
		SpeedRPM:       1500,
		TorqueMeasured: 10.5,
		Ud:             -12.0,
		Uq:             40.0,
		Id:             -5.0,
		Iq:             50.0,
	}, samples[0])
	assert.Equal(t, -1500.0, samples[2].SpeedRPM)
	assert.Equal(t, 10.9, samples[2].TorqueMeasured)
}

func TestLoad_CustomColumns(t *testing.T) {
	data := "Iq,Id,Uq,Ud,T,n,t\n50,-5,40,-12,10.5,1500,0.5\n"
	cols := config.ColumnsConfig{
		Time: "t", Speed: "n", Torque: "T",
		VoltageD: "Ud", VoltageQ: "Uq", CurrentD: "Id", CurrentQ: "Iq",
	}

	samples, err := Load(strings.NewReader(data), cols)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 0.5, samples[0].Time)
	assert.Equal(t, 1500.0, samples[0].SpeedRPM)
	assert.Equal(t, -5.0, samples[0].Id)
	assert.Equal(t, 50.0, samples[0].Iq)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{
			name:    "empty",
			data:    "",
			wantMsg: "header",
		},
		{
			name:    "missing columns",
			data:    "time_s,speed_rpm,torque_nm,ud_vpk,uq_vpk\n0,1,2,3,4\n",
			wantMsg: "id_apk, iq_apk",
		},
		{
			name:    "bad number",
			data:    "time_s,speed_rpm,torque_nm,ud_vpk,uq_vpk,id_apk,iq_apk\n0,1,2,3,4,five,6\n",
			wantMsg: "line 2",
		},
		{
			name:    "short row",
			data:    "time_s,speed_rpm,torque_nm,ud_vpk,uq_vpk,id_apk,iq_apk\n0,1,2,3,4,5,6\n0,1,2\n",
			wantMsg: "line 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, err := Load(strings.NewReader(tt.data), defaultColumns())
			require.Error(t, err)
			assert.Nil(t, samples)
			assert.Equal(t, errs.KindInput, errs.KindOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	require.NoError(t, os.WriteFile(path, []byte(validCSV), 0644))

	samples, err := LoadFile(path, defaultColumns())
	require.NoError(t, err)
	assert.Len(t, samples, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), defaultColumns())
	require.Error(t, err)
	assert.Equal(t, errs.KindInput, errs.KindOf(err))
}

func TestWriteDerived(t *testing.T) {
	samples := []DerivedSample{
		{
			Sample: Sample{Time: 0.5, SpeedRPM: 1500, Id: -5, Iq: 50},
			OmegaE: 628.3185307179587,
			PsiD:   0.05,
			PsiQ:   0.045,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDerived(&buf, samples))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, DerivedHeader, records[0])
	require.Len(t, records[1], len(DerivedHeader))
	assert.Equal(t, "0.5", records[1][0])
	assert.Equal(t, "628.3185307179587", records[1][7])
	assert.Equal(t, "0.05", records[1][8])
	assert.Equal(t, "0.045", records[1][9])
}
