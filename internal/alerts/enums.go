package alerts

// CauseMap maps GTFS-RT Cause enum to string
var CauseMap = map[int32]string{
	1:  "UNKNOWN_CAUSE",
	2:  "OTHER_CAUSE",
	3:  "TECHNICAL_PROBLEM",
	4:  "STRIKE",
	5:  "DEMONSTRATION",
	6:  "ACCIDENT",
	7:  "HOLIDAY",
	8:  "WEATHER",
	9:  "MAINTENANCE",
	10: "CONSTRUCTION",
	11: "POLICE_ACTIVITY",
	12: "MEDICAL_EMERGENCY",
}

// EffectMap maps GTFS-RT Effect enum to string
var EffectMap = map[int32]string{
	1:  "NO_SERVICE",
	2:  "REDUCED_SERVICE",
	3:  "SIGNIFICANT_DELAYS",
	4:  "DETOUR",
	5:  "ADDITIONAL_SERVICE",
	6:  "MODIFIED_SERVICE",
	7:  "OTHER_EFFECT",
	8:  "UNKNOWN_EFFECT",
	9:  "STOP_MOVED",
	10: "NO_EFFECT",
	11: "ACCESSIBILITY_ISSUE",
}
