package jos3

// 血液の容積比熱, Wh/(L K)
func getRhoCBlood() float64 {
	return 1.067
}

// 水の容積比熱, Wh/(L K)
// 代謝による局所血流量の増分を求める際に使用する。
func getRhoCWater() float64 {
	return 1.163
}

// 汗の蒸発潜熱, J/g
func getLatentHeatSweat() float64 {
	return 2418.0
}

// ルイス係数, K/kPa
func getLewisRelation() float64 {
	return 16.5
}

// clo から m2 K/W への換算係数
func getCloToThermalResistance() float64 {
	return 0.155
}

// 1 met あたりの代謝量, W/m2
func getMetUnit() float64 {
	return 58.15
}

// 標準体重, kg
func getStandardWeight() float64 {
	return 74.43
}

// 標準体格の心拍出量, L/h
func getStandardCardiacOutput() float64 {
	return 290.0
}

// 全身平均の放射熱伝達率, W/(m2 K)
func getWholeBodyRadiativeCoefficient() float64 {
	return 4.7
}
