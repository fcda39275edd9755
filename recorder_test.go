package jos3

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countPrefix(names []string, prefix string) int {
	n := 0
	for _, name := range names {
		if len(name) > len(prefix) && name[:len(prefix)+1] == prefix+"_" {
			n++
		}
	}
	return n
}

func TestResultColumnsCompact(t *testing.T) {
	m := newTestModel(t)
	names := m.ResultColumns()

	assert.Equal(t, "cycle_time", names[0])
	assert.Contains(t, names, "t_skin_head")
	assert.Contains(t, names, "t_core_right_foot")
	assert.Contains(t, names, "q_skin2env_chest")
	assert.Contains(t, names, "weight_loss_by_evap_and_res")
	assert.NotContains(t, names, "t_cb")
	assert.NotContains(t, names, "height")
	// 9 scalars and 4 per-segment metrics
	assert.Len(t, names, 9+4*NumSegments)
}

func TestResultColumnsVerbose(t *testing.T) {
	m := newTestModel(t, WithVerboseOutput(true))
	names := m.ResultColumns()

	assert.Contains(t, names, "t_cb")
	assert.Contains(t, names, "t_muscle_head")
	assert.Contains(t, names, "t_muscle_pelvis")
	assert.NotContains(t, names, "t_muscle_chest")
	assert.Equal(t, 12, countPrefix(names, "t_superficial_vein"))
	assert.Equal(t, 2, countPrefix(names, "q_bmr_fat"))
	assert.Equal(t, NumSegments, countPrefix(names, "t_artery"))
	assert.Contains(t, names, "bf_ava_foot")
	assert.Contains(t, names, "q_res_latent")

	first := m.History()[0]
	require.NotNil(t, first.Detail)
	assert.Equal(t, m.Name(), first.Detail.Name)
	assert.Equal(t, Male, first.Detail.Sex)
	assert.InDeltaSlice(t, first.TCore.Slice(), first.Detail.SetpointCore.Slice(), 1e-3)
}

func TestResults(t *testing.T) {
	m := newTestModel(t, WithVerboseOutput(true))
	require.NoError(t, m.Simulate(3, 60, true))
	require.NoError(t, m.Simulate(2, 60, false))
	require.NoError(t, m.Simulate(1, 120, true))

	res := m.Results()
	assert.Len(t, res, len(m.ResultColumns()))
	for name, series := range res {
		assert.Len(t, series, 5, name)
	}
	assert.Equal(t, []float64{0, 1, 2, 3, 6}, res["cycle_time"])
	assert.Equal(t, []float64{0, 60, 120, 180, 420}, res["simulation_time"])
	assert.Equal(t, 120.0, res["dt"][4])
	assert.Equal(t, m.TSkin()[Head], res["t_skin_head"][4])
	assert.Equal(t, m.TCentralBlood(), res["t_cb"][4])
	assert.Equal(t, 1.72, res["height"][2])
}

func TestWriteCSV(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.Simulate(2, 60, true))

	var buf bytes.Buffer
	require.NoError(t, m.WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, m.ResultColumns(), records[0])

	col := -1
	for i, name := range records[0] {
		if name == "t_skin_mean" {
			col = i
		}
	}
	require.GreaterOrEqual(t, col, 0)
	got, err := strconv.ParseFloat(records[3][col], 64)
	require.NoError(t, err)
	assert.Equal(t, m.TSkinMean(), got)
}

func TestWriteSummaryCSV(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.SetTo(30.0))
	require.NoError(t, m.Simulate(3, 60, true))

	var buf bytes.Buffer
	require.NoError(t, m.WriteSummaryCSV(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "cycle_time,simulation_time,dt,t_skin_mean,w_mean,"))

	var rows []*SummaryRow
	require.NoError(t, gocsv.Unmarshal(&buf, &rows))
	require.Len(t, rows, 4)
	results := m.Results()
	for i, r := range rows {
		assert.Equal(t, i, r.Cycle)
		assert.InDelta(t, results["simulation_time"][i], r.SimulationTime, 1e-12)
		assert.InDelta(t, results["t_skin_mean"][i], r.TSkinMean, 1e-12)
		assert.InDelta(t, results["w_mean"][i], r.WettednessMean, 1e-12)
		assert.InDelta(t, results["q_res"][i], r.RespiratoryLoss, 1e-12)
	}
}

func TestRowWithoutDetail(t *testing.T) {
	m := newTestModel(t, WithVerboseOutput(true))
	m.verbose = false
	require.NoError(t, m.Simulate(1, 60, true))

	res := m.Results()
	assert.False(t, math.IsNaN(res["height"][0]))
	assert.True(t, math.IsNaN(res["height"][1]))
}

func TestSkinHeatLossUsesTickStartTemperature(t *testing.T) {
	m := newTestModel(t, WithVerboseOutput(true))
	require.NoError(t, m.SetTo(10.0))
	before := m.TSkin()

	require.NoError(t, m.Simulate(1, 600, true))
	last := m.Last()
	d := last.Detail
	require.NotNil(t, d)

	for i := range before {
		want := (before[i] - d.OperativeTemperature[i]) / d.DryResistance[i] * m.BSA()[i]
		assert.InDelta(t, want, d.SkinSensible[i], 1e-9, Segment(i).String())
		assert.InDelta(t, want+d.ESkin[i], last.SkinToEnvironment[i], 1e-9, Segment(i).String())
	}

	// the skin cools during a long cold tick, so the end-of-tick value is
	// noticeably smaller than the loss the solve applied
	after := (m.TSkin()[Head] - d.OperativeTemperature[Head]) / d.DryResistance[Head] * m.BSA()[Head]
	assert.Greater(t, d.SkinSensible[Head]-after, 1.0)
}
