package asset

// DefaultAtlas returns the default YAML glyph atlas: one back region and one face per card type
const DefaultAtlas = `
# === Terminal glyph atlas ===
# Colors accept tcell names or #rrggbb

background: "#101820"

back:
  glyph: "▒"
  fg: "#3d5a80"
  bg: "#1b263b"

faces:
  - { glyph: "♠", fg: "#e0fbfc", bg: "#293241" }
  - { glyph: "♥", fg: "#ee6c4d", bg: "#293241" }
  - { glyph: "♦", fg: "#f4a261", bg: "#293241" }
  - { glyph: "♣", fg: "#98c1d9", bg: "#293241" }
  - { glyph: "★", fg: "#ffd166", bg: "#293241" }
  - { glyph: "☾", fg: "#c77dff", bg: "#293241" }
  - { glyph: "☀", fg: "#ffb703", bg: "#293241" }
  - { glyph: "♪", fg: "#06d6a0", bg: "#293241" }
`
