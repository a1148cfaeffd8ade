package github

import "strings"

// classifyPriority derives an issue priority from its label names. The
// first label that matches a priority marker wins; labels without any
// marker leave the issue in the "none" bucket.
func classifyPriority(labels []string) string {
	for _, label := range labels {
		l := strings.ToLower(label)
		switch {
		case strings.Contains(l, "critical"), strings.Contains(l, "p0"):
			return "critical"
		case strings.Contains(l, "high"), strings.Contains(l, "p1"):
			return "high"
		case strings.Contains(l, "medium"), strings.Contains(l, "p2"):
			return "medium"
		case strings.Contains(l, "low"), strings.Contains(l, "p3"):
			return "low"
		}
	}
	return "none"
}

// add places an issue into the bucket for the given priority.
func (b *IssueBuckets) add(priority string, issue Issue) {
	switch priority {
	case "critical":
		b.Critical = append(b.Critical, issue)
	case "high":
		b.High = append(b.High, issue)
	case "medium":
		b.Medium = append(b.Medium, issue)
	case "low":
		b.Low = append(b.Low, issue)
	default:
		b.None = append(b.None, issue)
	}
}
