package config

// -----------------------------------------------------------------------------
// Embedded board configuration
//
// Key: board name (board.Name()). Val: raw JSON; missing keys keep the
// values from Default().
// -----------------------------------------------------------------------------

const cfgHost = `{
  "arena_size": 16384,
  "log_level": "debug",
  "heartbeat_s": 2
}`

const cfgPico = `{
  "arena_size": 8192,
  "ring_size": 1024,
  "uart_baud": 115200,
  "i2c_hz": 400000
}`

// ESP8266-class boards round arena requests to 4 bytes.
const cfgESP8266 = `{
  "arena_size": 4096,
  "align": 4,
  "ring_size": 512,
  "uart_baud": 115200
}`

// The RX and RZ ports never rounded requests.
const cfgRX = `{
  "arena_size": 8192,
  "align": 1,
  "ring_size": 512,
  "uart_baud": 115200
}`

const cfgRZA2M = `{
  "arena_size": 65536,
  "align": 1,
  "ring_size": 2048,
  "uart_baud": 115200
}`

var embeddedConfigs = map[string][]byte{
	"host":    []byte(cfgHost),
	"pico":    []byte(cfgPico),
	"esp8266": []byte(cfgESP8266),
	"rx63n":   []byte(cfgRX),
	"rx65n":   []byte(cfgRX),
	"rza2m":   []byte(cfgRZA2M),
}
