package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

// setting keys
const (
	sI2CDriver        = "i2cDriver"
	sI2CBus           = "i2cBus"
	sI2CPeriphBus     = "i2cPeriphBus"
	sI2CDevices       = "i2cDevices"
	sScroll           = "scroll"
	sContinuous       = "scrollContinuous"
	sScrollDelay      = "scrollDelay"
	sScrollSpeed      = "scrollSpeed"
	sScrollDwell      = "scrollDwell"
	sBrightness       = "brightness"
	sBlinkRate        = "blinkRate"
	sUpdateInterval   = "updateInterval"
	sContent          = "content"
	sText             = "text"
	sTimeFormat       = "timeFormat"
	sLuaScript        = "luaScript"
	sLogFile          = "logFile"
	sLogMaxSize       = "logMaxSize"
	sLogMaxBackups    = "logMaxBackups"
	sDebug            = "debugDump"
	sHTTPAddr         = "httpAddr"
	sHTTPUser         = "httpUser"
	sHTTPSecret       = "httpSecret"
	sHTTPMaxConns     = "httpMaxConns"
	sDimButton        = "dimButton"
	sPauseButton      = "pauseButton"
	sButtonPullup     = "buttonPullup"
	sButtonSimulated  = "buttonSimulated"
	defaultConfigFile = "/etc/default/segscroll/segscroll.conf"
)

// i2c drivers
const (
	driverSim    = "sim"
	driverDev    = "dev"
	driverPeriph = "periph"
)

// content sources
const (
	contentClock = "clock"
	contentText  = "text"
	contentLua   = "lua"
)

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sI2CDriver] = driverSim
	s[sI2CBus] = 1
	s[sI2CPeriphBus] = ""
	s[sI2CDevices] = []byte{0x70}
	s[sScroll] = true
	s[sContinuous] = false
	s[sScrollDelay], _ = time.ParseDuration("1500ms")
	s[sScrollSpeed], _ = time.ParseDuration("300ms")
	s[sScrollDwell], _ = time.ParseDuration("1s")
	s[sBrightness] = 0.5
	s[sBlinkRate] = byte(0)
	s[sUpdateInterval], _ = time.ParseDuration("1s")
	s[sContent] = contentClock
	s[sText] = ""
	s[sTimeFormat] = "%H:%M:%S"
	s[sLuaScript] = ""
	s[sLogFile] = "/var/log/segscroll.log"
	s[sLogMaxSize] = 10
	s[sLogMaxBackups] = 3
	s[sDebug] = false
	s[sHTTPAddr] = ":8080"
	s[sHTTPUser] = "segscroll"
	s[sHTTPSecret] = ""
	s[sHTTPMaxConns] = 4
	s[sDimButton] = -1
	s[sPauseButton] = -1
	s[sButtonPullup] = true
	s[sButtonSimulated] = false

	return configSettings{settings: s}
}

func parseByte(raw []byte) (byte, error) {
	val, err := strconv.ParseInt(strings.Trim(string(raw), `"`), 0, 64)
	if err != nil {
		return 0, err
	}
	if val < 0 || val > 255 {
		return 0, fmt.Errorf("Out of range: %d", val)
	}
	return byte(val), nil
}

func (s configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		raw, dataType, _, err := jsonparser.Get(data, k)
		if dataType == jsonparser.NotExist {
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %v", k, err)
		}

		switch initVal.(type) {
		case uint8:
			var val byte
			val, err = parseByte(raw)
			if err == nil {
				s.settings[k] = val
			}
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case float64:
			var val float64
			val, err = jsonparser.GetFloat(data, k)
			if err == nil {
				s.settings[k] = val
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false
				switch strings.ToLower(string(raw)) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			var str string
			str, err = jsonparser.GetString(data, k)
			if err == nil {
				s.settings[k] = str
			}
		case []byte:
			vals := []byte{}
			_, aerr := jsonparser.ArrayEach(data, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
				if err != nil {
					return
				}
				var b byte
				b, err = parseByte(value)
				vals = append(vals, b)
			}, k)
			if err == nil {
				err = aerr
			}
			if err == nil {
				s.settings[k] = vals
			}
		default:
			err = fmt.Errorf("Bad type: %T", initVal)
		}
		if err != nil {
			return fmt.Errorf("%s: %v", k, err)
		}
	}
	return nil
}

func initSettings(configFile string) configSettings {
	log.Println("initSettings")

	// defaults
	s := defaultSettings()

	// try to open the config file
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		log.Fatalf("Could not load conf file '%s', terminating", configFile)
	}

	log.Printf("Reading configuration from '%s'", configFile)

	// json parse it
	if err := s.settingsFromJSON(data); err != nil {
		log.Fatal(err.Error())
	}

	return s
}

func (s configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s configSettings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int: // cast to byte
		return byte(v)
	default:
		return 0
	}
}

func (s configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	case byte:
		return int(v)
	default:
		return 0
	}
}

func (s configSettings) GetFloat(key string) float64 {
	switch v := s.settings[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func (s configSettings) GetBytes(key string) []byte {
	switch v := s.settings[key].(type) {
	case []byte:
		return v
	default:
		return nil
	}
}

func (s configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := s.settings[k]
		if k == sHTTPSecret {
			v = "****"
		}
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
