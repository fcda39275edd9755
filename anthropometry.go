package jos3

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BSAEquation names a body surface area formula.
type BSAEquation string

const (
	DuBois   BSAEquation = "dubois"
	Takahira BSAEquation = "takahira"
	Fujimoto BSAEquation = "fujimoto"
	Kurazumi BSAEquation = "kurazumi"
)

// Sex selects the sex-dependent branches of the metabolic and shivering
// models.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// Profile describes the simulated individual. It is fixed for the lifetime
// of a Model.
type Profile struct {
	Height       float64     // 身長, m
	Weight       float64     // 体重, kg
	BodyFat      float64     // 体脂肪率, %
	Age          float64     // 年齢, years
	Sex          Sex         // 性別
	CardiacIndex float64     // 心係数, L/(min m2)
	BMREquation  BMREquation // 基礎代謝量の推定式
	BSAEquation  BSAEquation // 体表面積の推定式
}

// DefaultProfile returns the standard body of the model.
func DefaultProfile() Profile {
	return Profile{
		Height:       1.72,
		Weight:       getStandardWeight(),
		BodyFat:      15,
		Age:          20,
		Sex:          Male,
		CardiacIndex: 2.59,
		BMREquation:  HarrisBenedict,
		BSAEquation:  DuBois,
	}
}

// Validate checks the profile against the accepted physiological ranges
// and equation names.
func (p Profile) Validate() error {
	if err := validateBody(p.Height, p.Weight, p.Age, p.BodyFat); err != nil {
		return err
	}
	if p.Sex != Male && p.Sex != Female {
		return &ValidationError{Parameter: "sex", Value: p.Sex, Accepted: "male or female"}
	}
	if p.CardiacIndex <= 0 {
		return &ValidationError{Parameter: "cardiac_index", Value: p.CardiacIndex, Accepted: "(0, +Inf)"}
	}
	if _, err := bsaCoefficients(p.BSAEquation); err != nil {
		return err
	}
	if !p.BMREquation.valid() {
		return &UnsupportedEquationError{Kind: "bmr", Name: string(p.BMREquation)}
	}
	return nil
}

func validateHeightWeight(height, weight float64) error {
	if !(height > 0) {
		return &ValidationError{Parameter: "height", Value: height, Accepted: "(0, +Inf) m"}
	}
	if !(weight > 0) {
		return &ValidationError{Parameter: "weight", Value: weight, Accepted: "(0, +Inf) kg"}
	}
	return nil
}

func validateAge(age float64) error {
	if !(age >= 0) {
		return &ValidationError{Parameter: "age", Value: age, Accepted: "[0, +Inf) years"}
	}
	return nil
}

func validateBodyFat(fat float64) error {
	if !(fat >= 0 && fat <= 100) {
		return &ValidationError{Parameter: "body_fat", Value: fat, Accepted: "[0, 100] %"}
	}
	return nil
}

func validateBody(height, weight, age, fat float64) error {
	if err := validateHeightWeight(height, weight); err != nil {
		return err
	}
	if err := validateAge(age); err != nil {
		return err
	}
	return validateBodyFat(fat)
}

// 標準体格の部位別体表面積, m2
var standardLocalBSA = SegmentValues{
	0.110, 0.029, 0.175, 0.161, 0.221,
	0.096, 0.063, 0.050, 0.096, 0.063, 0.050,
	0.209, 0.112, 0.056, 0.209, 0.112, 0.056,
}

func bsaCoefficients(eq BSAEquation) ([3]float64, error) {
	switch eq {
	case DuBois:
		return [3]float64{0.202, 0.425, 0.725}, nil
	case Takahira:
		return [3]float64{0.2042, 0.425, 0.725}, nil
	case Fujimoto:
		return [3]float64{0.1882, 0.444, 0.663}, nil
	case Kurazumi:
		return [3]float64{0.244, 0.383, 0.693}, nil
	default:
		return [3]float64{}, &UnsupportedEquationError{Kind: "bsa", Name: string(eq)}
	}
}

/*
体表面積を計算する。

	Args:
	    height: 身長, m
	    weight: 体重, kg
	    eq: 推定式 (dubois, takahira, fujimoto, kurazumi)

	Returns:
	    体表面積, m2
*/
func BodySurfaceArea(height, weight float64, eq BSAEquation) (float64, error) {
	if err := validateHeightWeight(height, weight); err != nil {
		return 0, err
	}
	c, err := bsaCoefficients(eq)
	if err != nil {
		return 0, err
	}
	return c[0] * math.Pow(weight, c[1]) * math.Pow(height, c[2]), nil
}

// BSARatio returns the body surface area relative to the standard body.
func BSARatio(height, weight float64, eq BSAEquation) (float64, error) {
	bsa, err := BodySurfaceArea(height, weight, eq)
	if err != nil {
		return 0, err
	}
	return bsa / standardLocalBSA.Sum(), nil
}

// WeightRatio returns the weight relative to the standard body.
func WeightRatio(weight float64) (float64, error) {
	if !(weight > 0) {
		return 0, &ValidationError{Parameter: "weight", Value: weight, Accepted: "(0, +Inf) kg"}
	}
	return weight / getStandardWeight(), nil
}

/*
基礎血流量の標準体格に対する比を計算する。

	Args:
	    height: 身長, m
	    weight: 体重, kg
	    eq: 体表面積の推定式
	    age: 年齢, years
	    ci: 心係数, L/(min m2)

	Returns:
	    基礎血流量比, -

	Notes:
	    心係数は年齢により 50歳未満 1.0, 60歳未満 0.85, 70歳未満 0.75, それ以上 0.7 倍に補正する。
*/
func BasalBloodFlowRatio(height, weight float64, eq BSAEquation, age, ci float64) (float64, error) {
	if err := validateAge(age); err != nil {
		return 0, err
	}
	bsa, err := BodySurfaceArea(height, weight, eq)
	if err != nil {
		return 0, err
	}

	ci *= 60 // L/(h m2)
	switch {
	case age < 50:
	case age < 60:
		ci *= 0.85
	case age < 70:
		ci *= 0.75
	default:
		ci *= 0.7
	}

	return ci * bsa / getStandardCardiacOutput(), nil
}

// LocalBSA returns the surface area of each segment scaled to the
// individual, m2.
func LocalBSA(height, weight float64, eq BSAEquation) (SegmentValues, error) {
	ratio, err := BSARatio(height, weight, eq)
	if err != nil {
		return SegmentValues{}, err
	}
	out := standardLocalBSA
	floats.Scale(ratio, out[:])
	return out, nil
}

// BMI returns the body mass index, kg/m2.
func BMI(height, weight float64) float64 {
	return weight / (height * height)
}
