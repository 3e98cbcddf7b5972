package cultivation

import (
	"fmt"
	"strings"

	"github.com/magefree/mage-tale-go/internal/game/attributes"
)

// Spiritual root bits.
const (
	RootMetal   = 1 << 0
	RootWood    = 1 << 1
	RootWater   = 1 << 2
	RootFire    = 1 << 3
	RootEarth   = 1 << 4
	RootVariant = 1 << 5

	RootFiveElements = RootMetal | RootWood | RootWater | RootFire | RootEarth
)

var elements = []int{RootMetal, RootWood, RootWater, RootFire, RootEarth}

var rootNames = map[int]string{
	RootMetal: "金",
	RootWood:  "木",
	RootWater: "水",
	RootFire:  "火",
	RootEarth: "土",
}

var variantNames = map[int]string{
	RootMetal | RootWater: "冰",
	RootEarth | RootWater: "雷",
	RootWood | RootFire:   "风",
	RootWood | RootWater:  "暗",
	RootFire | RootMetal:  "光",
}

// SpiritualRootName renders a spiritual root bitmask, e.g. "天灵根（土）".
func SpiritualRootName(mask int) string {
	base := mask &^ RootVariant

	var present []string
	missing := ""
	for _, e := range elements {
		if base&e != 0 {
			present = append(present, rootNames[e])
		} else if missing == "" {
			missing = rootNames[e]
		}
	}
	joined := strings.Join(present, "/")

	if mask&RootVariant != 0 {
		if name, ok := variantNames[base]; ok {
			return fmt.Sprintf("异灵根（%s）", name)
		}
		return fmt.Sprintf("变异灵根（%s）", joined)
	}

	switch len(present) {
	case 0:
		return "无灵根"
	case 1:
		return fmt.Sprintf("天灵根（%s）", joined)
	case 2:
		return fmt.Sprintf("双灵根（%s）", joined)
	case 3:
		return fmt.Sprintf("三灵根（%s）", joined)
	case 4:
		return fmt.Sprintf("伪灵根（缺%s）", missing)
	default:
		return "五行俱全"
	}
}

// Describe renders the cultivation stage and spiritual root held in attrs.
// ok is false when attrs carries no cultivation stage.
func Describe(attrs *attributes.Table) (stage, root string, ok bool) {
	value, ok := attrs.Lookup(AttrCultivationStage)
	if !ok {
		return "", "", false
	}
	xpCap, hasCap := attrs.Lookup(AttrCultivationXPMax)
	if !hasCap {
		xpCap, hasCap = MaxXP(value)
	}
	current := attrs.Get(AttrCultivationXP)
	if !hasCap {
		// Without a cap there is no bottleneck to report.
		xpCap = current + 1
	}
	return StageName(value, xpCap, current), SpiritualRootName(attrs.Get(AttrSpiritualRoot)), true
}
