package quota

import "math"

// NearLimitPercent is the utilization threshold at which a resource is
// flagged for the admin console.
const NearLimitPercent = 80

// ResourceReport is the per-dimension view of usage against the effective
// limit. Percent is clamped to [0,100]; over-limit usage stays visible as
// Used > Limit while Percent caps at 100.
type ResourceReport struct {
	Used      int64 `json:"used"`
	Limit     int64 `json:"limit"`
	Percent   int   `json:"percent"`
	NearLimit bool  `json:"near_limit"`
}

// Report maps every resource dimension to its utilization view.
type Report map[Key]ResourceReport

// BuildReport joins resolved limits with a usage snapshot. Dimensions
// absent from usage count as zero consumption.
func BuildReport(limits Limits, usage Usage) Report {
	report := make(Report, len(Keys))
	for _, key := range Keys {
		report[key] = buildResource(usage[key], limits[key])
	}
	return report
}

// SeatSummary aggregates owner and collaborator seats into the single row
// the console shows. This is a reporting convenience only; both seat
// dimensions stay resolved and enforced independently. If either seat
// limit is unlimited the aggregate is unlimited (the sentinel is never
// summed).
func SeatSummary(limits Limits, usage Usage) ResourceReport {
	used := usage[OwnerSeats] + usage[CollaboratorSeats]

	ownerLimit := limits[OwnerSeats]
	collabLimit := limits[CollaboratorSeats]
	if ownerLimit == Unlimited || collabLimit == Unlimited {
		return buildResource(used, Unlimited)
	}
	return buildResource(used, ownerLimit+collabLimit)
}

func buildResource(used, limit int64) ResourceReport {
	percent := percentOf(used, limit)
	return ResourceReport{
		Used:      used,
		Limit:     limit,
		Percent:   percent,
		NearLimit: limit != Unlimited && percent >= NearLimitPercent,
	}
}

func percentOf(used, limit int64) int {
	if limit == Unlimited {
		return 0
	}
	if limit == 0 {
		if used > 0 {
			return 100
		}
		return 0
	}
	percent := int(math.Round(float64(used) / float64(limit) * 100))
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}
