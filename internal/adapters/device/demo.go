package device

// demoScript exercises the default profile: a tap, a two-finger scroll, a
// three-finger swipe up and a pinch.
const demoScript = `
name: demo
frames:
  - at_ms: 0
    points: [{id: 1, x: 0.5, y: 0.5, lifecycle: down}]
  - at_ms: 60
    points: [{id: 1, x: 0.5, y: 0.5, lifecycle: up}]

  - at_ms: 1000
    points: [{id: 1, x: 0.4, y: 0.4, lifecycle: down}, {id: 2, x: 0.6, y: 0.4, lifecycle: down}]
  - at_ms: 1100
    points: [{id: 1, x: 0.4, y: 0.5, lifecycle: move}, {id: 2, x: 0.6, y: 0.5, lifecycle: move}]
  - at_ms: 1200
    points: [{id: 1, x: 0.4, y: 0.6, lifecycle: move}, {id: 2, x: 0.6, y: 0.6, lifecycle: move}]
  - at_ms: 1250
    points: [{id: 1, x: 0.4, y: 0.6, lifecycle: up}, {id: 2, x: 0.6, y: 0.6, lifecycle: up}]

  - at_ms: 2000
    points: [{id: 1, x: 0.3, y: 0.8, lifecycle: down}, {id: 2, x: 0.5, y: 0.8, lifecycle: down}, {id: 3, x: 0.7, y: 0.8, lifecycle: down}]
  - at_ms: 2050
    points: [{id: 1, x: 0.3, y: 0.6, lifecycle: move}, {id: 2, x: 0.5, y: 0.6, lifecycle: move}, {id: 3, x: 0.7, y: 0.6, lifecycle: move}]
  - at_ms: 2100
    points: [{id: 1, x: 0.3, y: 0.6, lifecycle: up}, {id: 2, x: 0.5, y: 0.6, lifecycle: up}, {id: 3, x: 0.7, y: 0.6, lifecycle: up}]

  - at_ms: 3000
    points: [{id: 1, x: 0.3, y: 0.5, lifecycle: down}, {id: 2, x: 0.7, y: 0.5, lifecycle: down}]
  - at_ms: 3050
    points: [{id: 1, x: 0.4, y: 0.5, lifecycle: move}, {id: 2, x: 0.6, y: 0.5, lifecycle: move}]
  - at_ms: 3100
    points: [{id: 1, x: 0.4, y: 0.5, lifecycle: up}, {id: 2, x: 0.6, y: 0.5, lifecycle: up}]
`

// DemoScript returns the built-in script.
func DemoScript() Script {
	s, err := ParseScript([]byte(demoScript))
	if err != nil {
		panic(err)
	}
	return s
}
