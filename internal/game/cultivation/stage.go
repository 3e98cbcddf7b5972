// Package cultivation renders cultivation-related attributes for display.
package cultivation

import "fmt"

// Attribute keys used by cultivation content.
const (
	AttrAge              = "age"
	AttrSpiritStones     = "spirit_stones"
	AttrCultivationStage = "cultivation_stage"
	AttrCultivationXP    = "cultivation_xp"
	AttrCultivationXPMax = "cultivation_xp_max"
	AttrSpiritualRoot    = "spiritual_root"
)

// Major stages. A full stage value is major*1000 + minor.
const (
	StageMortal = iota
	StageQiRefining
	StageFoundationEstablishment
	StageCoreFormation
	StageNascentSoul
	StageSpiritTransformation
)

var stageNames = map[int]string{
	StageMortal:                  "凡人",
	StageQiRefining:              "炼气",
	StageFoundationEstablishment: "筑基",
	StageCoreFormation:           "结丹",
	StageNascentSoul:             "元婴",
	StageSpiritTransformation:    "化神",
}

var tierNames = [3]string{"初期", "中期", "后期"}

// maxXP holds the XP cap per full stage value.
var maxXP = map[int]int{
	1001: 100,
	1002: 120,
	1003: 140,
	1004: 160,
	1005: 200,
	1006: 220,
	1007: 240,
	1008: 260,
	1009: 300,
	1010: 330,
	1011: 360,
	1012: 400,
}

// MaxXP returns the XP cap for a full stage value.
func MaxXP(stage int) (int, bool) {
	xp, ok := maxXP[stage]
	return xp, ok
}

// StageName renders a full stage value, e.g. "炼气初期 1 阶" or
// "筑基后期 9 阶 瓶颈" once currentXP reaches stageMaxXP.
func StageName(stage, stageMaxXP, currentXP int) string {
	if stage == StageMortal {
		return stageNames[StageMortal]
	}

	major, minor := stage/1000, stage%1000
	name, ok := stageNames[major]
	if !ok {
		name = "未知"
	}

	// Qi Refining has 12 minor stages, four per tier; the rest have nine.
	perTier := 3
	if major == StageQiRefining {
		perTier = 4
	}
	var tier string
	switch {
	case minor <= perTier:
		tier = tierNames[0]
	case minor <= 2*perTier:
		tier = tierNames[1]
	default:
		tier = tierNames[2]
	}

	bottleneck := ""
	if currentXP >= stageMaxXP {
		bottleneck = " 瓶颈"
	}
	return fmt.Sprintf("%s%s %d 阶%s", name, tier, minor, bottleneck)
}
