package visual

// RainPalette is the default drop gradient, tail to head
var RainPalette = []string{"#003B00", "#008F11", "#00FF41"}

// RainHead is blended into the head cell on top of the palette end
const RainHead = "#D4FFDE"

// TrailPalette is the default particle color pool
var TrailPalette = []string{"#00FFD0", "#4DC9FF", "#B39DFF", "#FFFFFF"}

// HeadBlend is how strongly RainHead is blended into the head cell
const HeadBlend = 0.65
