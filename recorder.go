package jos3

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/gocarina/gocsv"
)

// Snapshot is the record of one tick.
type Snapshot struct {
	Cycle          int     // ステップ数
	SimulationTime float64 // 経過時間, s
	Dtime          float64 // 時間間隔, s

	TSkinMean      float64       // 平均皮膚温度, degree C
	TSkin          SegmentValues // 皮膚温度, degree C
	TCore          SegmentValues // コア温度, degree C
	WettednessMean float64       // 平均皮膚濡れ率, -
	Wettedness     SegmentValues // 皮膚濡れ率, -

	WeightLoss         float64       // 蒸発と呼吸による体重減少速度, g/s
	CardiacOutput      float64       // 心拍出量, L/h
	ThermogenesisTotal float64       // 総熱産生量, W
	RespiratoryLoss    float64       // 呼吸による熱損失, W
	SkinToEnvironment  SegmentValues // 皮膚から環境への熱損失, W

	// Detail is set only when the model was built with verbose output.
	Detail *Detail
}

// Detail is the diagnostic record of one tick.
type Detail struct {
	Name    string
	Height  float64 // m
	Weight  float64 // kg
	BodyFat float64 // %
	Sex     Sex
	Age     float64 // years
	BSA     SegmentValues

	SetpointCore     SegmentValues
	SetpointSkin     SegmentValues
	TCentralBlood    float64
	TArtery          SegmentValues
	TVein            SegmentValues
	TSuperficialVein []float64 // limb segments
	TMuscle          []float64 // head, pelvis
	TFat             []float64 // head, pelvis

	OperativeTemperature  SegmentValues
	DryResistance         SegmentValues
	EvaporativeResistance SegmentValues
	Tdb, Tr, RH, V, Clo   SegmentValues
	ActivityRatio         float64

	ESkin, EMax, ESweat SegmentValues

	BloodFlow BloodFlow
	Basal     TissueValues
	Work      SegmentValues
	Shivering SegmentValues
	NST       SegmentValues
	Thermo    TissueValues

	SkinSensible        SegmentValues
	SkinLatent          SegmentValues
	RespiratorySensible float64
	RespiratoryLatent   float64
}

func (m *Model) snapshot(dtime float64, ts tickState) Snapshot {
	reg := ts.reg
	tSkin := m.TSkin()

	// 皮膚からの顕熱損失, W (解いた境界条件と同じステップ開始時の皮膚温度による)
	var sensible, total SegmentValues
	for i := range sensible {
		sensible[i] = (ts.tSkin[i] - ts.to[i]) / ts.rt[i] * m.bsa[i]
		total[i] = sensible[i] + reg.Evaporation.ESkin[i]
	}

	// 体重減少, g/s
	lh := getLatentHeatSweat()
	wl := ts.resLatent / lh
	for i := range reg.Evaporation.ESweat {
		wl += (reg.Evaporation.ESweat[i] + 0.06*reg.Evaporation.EMax[i]) / lh
	}

	s := Snapshot{
		Cycle:              m.cycle,
		SimulationTime:     m.elapsed,
		Dtime:              dtime,
		TSkinMean:          tSkin.WeightedMean(standardLocalBSA),
		TSkin:              tSkin,
		TCore:              m.TCore(),
		WettednessMean:     reg.Evaporation.Wettedness.WeightedMean(standardLocalBSA),
		Wettedness:         reg.Evaporation.Wettedness,
		WeightLoss:         wl,
		CardiacOutput:      reg.BloodFlow.CardiacOutput(),
		ThermogenesisTotal: reg.Thermogenesis.Total(),
		RespiratoryLoss:    ts.resSensible + ts.resLatent,
		SkinToEnvironment:  total,
	}
	if !m.verbose {
		return s
	}

	p := m.profile
	s.Detail = &Detail{
		Name:                  m.name,
		Height:                p.Height,
		Weight:                p.Weight,
		BodyFat:               p.BodyFat,
		Sex:                   p.Sex,
		Age:                   p.Age,
		BSA:                   m.bsa,
		SetpointCore:          ts.setCore,
		SetpointSkin:          ts.setSkin,
		TCentralBlood:         m.TCentralBlood(),
		TArtery:               m.TArtery(),
		TVein:                 m.TVein(),
		TSuperficialVein:      m.TSuperficialVein(),
		TMuscle:               m.TMuscle(),
		TFat:                  m.TFat(),
		OperativeTemperature:  ts.to,
		DryResistance:         ts.rt,
		EvaporativeResistance: ts.ret,
		Tdb:                   m.env.Tdb,
		Tr:                    m.env.Tr,
		RH:                    m.env.RH,
		V:                     m.env.V,
		Clo:                   m.env.Clo,
		ActivityRatio:         m.env.ActivityRatio,
		ESkin:                 reg.Evaporation.ESkin,
		EMax:                  reg.Evaporation.EMax,
		ESweat:                reg.Evaporation.ESweat,
		BloodFlow:             reg.BloodFlow,
		Basal:                 reg.Basal,
		Work:                  reg.Work,
		Shivering:             reg.Shivering,
		NST:                   reg.NonShivering,
		Thermo:                reg.Thermogenesis,
		SkinSensible:          sensible,
		SkinLatent:            reg.Evaporation.ESkin,
		RespiratorySensible:   ts.resSensible,
		RespiratoryLatent:     ts.resLatent,
	}
	return s
}

// resultColumn is one metric of the results table. segs is nil for scalar
// metrics; otherwise the metric expands into one column per segment.
type resultColumn struct {
	name   string
	segs   []Segment
	detail bool
	value  func(s *Snapshot) []float64
}

func scalar(name string, f func(s *Snapshot) float64) resultColumn {
	return resultColumn{name: name, value: func(s *Snapshot) []float64 { return []float64{f(s)} }}
}

func perSegment(name string, f func(s *Snapshot) SegmentValues) resultColumn {
	return resultColumn{name: name, segs: ValidLayerSegments(Skin), value: func(s *Snapshot) []float64 {
		v := f(s)
		return v[:]
	}}
}

func detailScalar(name string, f func(d *Detail) float64) resultColumn {
	c := scalar(name, func(s *Snapshot) float64 { return f(s.Detail) })
	c.detail = true
	return c
}

func detailSegment(name string, f func(d *Detail) SegmentValues) resultColumn {
	c := perSegment(name, func(s *Snapshot) SegmentValues { return f(s.Detail) })
	c.detail = true
	return c
}

// detailLayer expands over the segments carrying layer l. f returns the
// values in ValidLayerSegments(l) order.
func detailLayer(name string, l Layer, f func(d *Detail) []float64) resultColumn {
	return resultColumn{name: name, segs: ValidLayerSegments(l), detail: true, value: func(s *Snapshot) []float64 {
		return f(s.Detail)
	}}
}

func onLayer(l Layer, v SegmentValues) []float64 {
	return v.gather(ValidLayerSegments(l))
}

var resultColumns = []resultColumn{
	scalar("cycle_time", func(s *Snapshot) float64 { return float64(s.Cycle) }),
	scalar("simulation_time", func(s *Snapshot) float64 { return s.SimulationTime }),
	scalar("dt", func(s *Snapshot) float64 { return s.Dtime }),
	scalar("t_skin_mean", func(s *Snapshot) float64 { return s.TSkinMean }),
	perSegment("t_skin", func(s *Snapshot) SegmentValues { return s.TSkin }),
	perSegment("t_core", func(s *Snapshot) SegmentValues { return s.TCore }),
	scalar("w_mean", func(s *Snapshot) float64 { return s.WettednessMean }),
	perSegment("w", func(s *Snapshot) SegmentValues { return s.Wettedness }),
	scalar("weight_loss_by_evap_and_res", func(s *Snapshot) float64 { return s.WeightLoss }),
	scalar("cardiac_output", func(s *Snapshot) float64 { return s.CardiacOutput }),
	scalar("q_thermogenesis_total", func(s *Snapshot) float64 { return s.ThermogenesisTotal }),
	scalar("q_res", func(s *Snapshot) float64 { return s.RespiratoryLoss }),
	perSegment("q_skin2env", func(s *Snapshot) SegmentValues { return s.SkinToEnvironment }),

	detailScalar("height", func(d *Detail) float64 { return d.Height }),
	detailScalar("weight", func(d *Detail) float64 { return d.Weight }),
	detailScalar("fat", func(d *Detail) float64 { return d.BodyFat }),
	detailScalar("age", func(d *Detail) float64 { return d.Age }),
	detailSegment("bsa", func(d *Detail) SegmentValues { return d.BSA }),
	detailSegment("t_core_set", func(d *Detail) SegmentValues { return d.SetpointCore }),
	detailSegment("t_skin_set", func(d *Detail) SegmentValues { return d.SetpointSkin }),
	detailScalar("t_cb", func(d *Detail) float64 { return d.TCentralBlood }),
	detailSegment("t_artery", func(d *Detail) SegmentValues { return d.TArtery }),
	detailSegment("t_vein", func(d *Detail) SegmentValues { return d.TVein }),
	detailLayer("t_superficial_vein", SuperficialVein, func(d *Detail) []float64 { return d.TSuperficialVein }),
	detailLayer("t_muscle", Muscle, func(d *Detail) []float64 { return d.TMuscle }),
	detailLayer("t_fat", Fat, func(d *Detail) []float64 { return d.TFat }),
	detailSegment("to", func(d *Detail) SegmentValues { return d.OperativeTemperature }),
	detailSegment("r_t", func(d *Detail) SegmentValues { return d.DryResistance }),
	detailSegment("r_et", func(d *Detail) SegmentValues { return d.EvaporativeResistance }),
	detailSegment("tdb", func(d *Detail) SegmentValues { return d.Tdb }),
	detailSegment("tr", func(d *Detail) SegmentValues { return d.Tr }),
	detailSegment("rh", func(d *Detail) SegmentValues { return d.RH }),
	detailSegment("v", func(d *Detail) SegmentValues { return d.V }),
	detailScalar("par", func(d *Detail) float64 { return d.ActivityRatio }),
	detailSegment("clo", func(d *Detail) SegmentValues { return d.Clo }),
	detailSegment("e_skin", func(d *Detail) SegmentValues { return d.ESkin }),
	detailSegment("e_max", func(d *Detail) SegmentValues { return d.EMax }),
	detailSegment("e_sweat", func(d *Detail) SegmentValues { return d.ESweat }),
	detailSegment("bf_core", func(d *Detail) SegmentValues { return d.BloodFlow.Core }),
	detailLayer("bf_muscle", Muscle, func(d *Detail) []float64 { return onLayer(Muscle, d.BloodFlow.Muscle) }),
	detailLayer("bf_fat", Fat, func(d *Detail) []float64 { return onLayer(Fat, d.BloodFlow.Fat) }),
	detailSegment("bf_skin", func(d *Detail) SegmentValues { return d.BloodFlow.Skin }),
	detailScalar("bf_ava_hand", func(d *Detail) float64 { return d.BloodFlow.AVAHand }),
	detailScalar("bf_ava_foot", func(d *Detail) float64 { return d.BloodFlow.AVAFoot }),
	detailSegment("q_bmr_core", func(d *Detail) SegmentValues { return d.Basal.Core }),
	detailLayer("q_bmr_muscle", Muscle, func(d *Detail) []float64 { return onLayer(Muscle, d.Basal.Muscle) }),
	detailLayer("q_bmr_fat", Fat, func(d *Detail) []float64 { return onLayer(Fat, d.Basal.Fat) }),
	detailSegment("q_bmr_skin", func(d *Detail) SegmentValues { return d.Basal.Skin }),
	detailSegment("q_work", func(d *Detail) SegmentValues { return d.Work }),
	detailSegment("q_shiv", func(d *Detail) SegmentValues { return d.Shivering }),
	detailSegment("q_nst", func(d *Detail) SegmentValues { return d.NST }),
	detailSegment("q_thermogenesis_core", func(d *Detail) SegmentValues { return d.Thermo.Core }),
	detailLayer("q_thermogenesis_muscle", Muscle, func(d *Detail) []float64 { return onLayer(Muscle, d.Thermo.Muscle) }),
	detailLayer("q_thermogenesis_fat", Fat, func(d *Detail) []float64 { return onLayer(Fat, d.Thermo.Fat) }),
	detailSegment("q_thermogenesis_skin", func(d *Detail) SegmentValues { return d.Thermo.Skin }),
	detailSegment("q_skin2env_sensible", func(d *Detail) SegmentValues { return d.SkinSensible }),
	detailSegment("q_skin2env_latent", func(d *Detail) SegmentValues { return d.SkinLatent }),
	detailScalar("q_res_sensible", func(d *Detail) float64 { return d.RespiratorySensible }),
	detailScalar("q_res_latent", func(d *Detail) float64 { return d.RespiratoryLatent }),
}

func (c resultColumn) keys() []string {
	if c.segs == nil {
		return []string{c.name}
	}
	keys := make([]string, len(c.segs))
	for i, s := range c.segs {
		keys[i] = c.name + "_" + s.String()
	}
	return keys
}

// columns returns the metrics present in the history. Detail metrics are
// included when the first snapshot carries a Detail.
func (m *Model) columns() []resultColumn {
	verbose := len(m.history) > 0 && m.history[0].Detail != nil
	var out []resultColumn
	for _, c := range resultColumns {
		if c.detail && !verbose {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ResultColumns returns the names of the results table in a stable order.
func (m *Model) ResultColumns() []string {
	var names []string
	for _, c := range m.columns() {
		names = append(names, c.keys()...)
	}
	return names
}

// row returns the values of one snapshot in ResultColumns order. Detail
// metrics of a snapshot without a Detail are NaN.
func (m *Model) row(s *Snapshot, cols []resultColumn) []float64 {
	var out []float64
	for _, c := range cols {
		if c.detail && s.Detail == nil {
			for range c.keys() {
				out = append(out, math.NaN())
			}
			continue
		}
		out = append(out, c.value(s)...)
	}
	return out
}

// Results returns every recorded metric as a time series keyed by column
// name. Per-segment metrics are suffixed with the segment name.
func (m *Model) Results() map[string][]float64 {
	cols := m.columns()
	names := m.ResultColumns()
	out := make(map[string][]float64, len(names))
	for _, name := range names {
		out[name] = make([]float64, 0, len(m.history))
	}
	for i := range m.history {
		for j, v := range m.row(&m.history[i], cols) {
			out[names[j]] = append(out[names[j]], v)
		}
	}
	return out
}

// WriteCSV writes the results table with one row per snapshot. The
// per-segment columns depend on the history, so rows are built from
// resultColumns rather than marshalled from a struct; see WriteSummaryCSV.
func (m *Model) WriteCSV(w io.Writer) error {
	cw := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	cols := m.columns()
	if err := cw.Write(m.ResultColumns()); err != nil {
		return fmt.Errorf("writing results header: %w", err)
	}
	for i := range m.history {
		values := m.row(&m.history[i], cols)
		record := make([]string, len(values))
		for j, v := range values {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing results row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing results: %w", err)
	}
	return nil
}

// SummaryRow holds the whole-body scalars of one snapshot.
type SummaryRow struct {
	Cycle              int     `csv:"cycle_time"`
	SimulationTime     float64 `csv:"simulation_time"`
	Dtime              float64 `csv:"dt"`
	TSkinMean          float64 `csv:"t_skin_mean"`
	WettednessMean     float64 `csv:"w_mean"`
	WeightLoss         float64 `csv:"weight_loss_by_evap_and_res"`
	CardiacOutput      float64 `csv:"cardiac_output"`
	ThermogenesisTotal float64 `csv:"q_thermogenesis_total"`
	RespiratoryLoss    float64 `csv:"q_res"`
}

// Summary returns one row per recorded snapshot.
func (m *Model) Summary() []*SummaryRow {
	rows := make([]*SummaryRow, len(m.history))
	for i := range m.history {
		s := &m.history[i]
		rows[i] = &SummaryRow{
			Cycle:              s.Cycle,
			SimulationTime:     s.SimulationTime,
			Dtime:              s.Dtime,
			TSkinMean:          s.TSkinMean,
			WettednessMean:     s.WettednessMean,
			WeightLoss:         s.WeightLoss,
			CardiacOutput:      s.CardiacOutput,
			ThermogenesisTotal: s.ThermogenesisTotal,
			RespiratoryLoss:    s.RespiratoryLoss,
		}
	}
	return rows
}

// WriteSummaryCSV writes the scalar columns of the results table.
func (m *Model) WriteSummaryCSV(w io.Writer) error {
	if err := gocsv.Marshal(m.Summary(), w); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
