package parameter

// ProgressionDifficultyPerPoint is the multiplier slope per score point.
// Balance depends on this exact value: 1000 points is 1.5x, 2000 points is 2x.
const ProgressionDifficultyPerPoint = 0.0005
