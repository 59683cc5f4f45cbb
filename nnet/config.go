package nnet

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"reflect"
	"strconv"
	"strings"
)

// Pipeline configuration settings
type Config struct {
	DataSet      string
	Model        string
	Corpus       string
	TrainSize    int
	TestSize     int
	BatchSize    int
	MaxEpoch     int
	MinLoss      float64
	SeqLen       int
	Step         int
	Order        int
	GenChars     int
	LogEvery     int
	RandSeed     int64
	DebugLevel   int
	Temperatures []float64
}

// Load config from json file under DataDir
func LoadConfig(name string) (c Config, err error) {
	filePath := path.Join(DataDir, name)
	var f *os.File
	if f, err = os.Open(filePath); err != nil {
		return
	}
	defer f.Close()
	fmt.Println("loading config from", name)
	dec := json.NewDecoder(f)
	err = dec.Decode(&c)
	return
}

// Save config to JSON file under DataDir
func (c Config) Save(name string) error {
	filePath := path.Join(DataDir, "."+name)
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	fmt.Println("saving config to", name)
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err = enc.Encode(c); err != nil {
		f.Close()
		return err
	}
	f.Close()
	return os.Rename(filePath, path.Join(DataDir, name))
}

func (c Config) Fields() []string {
	st := reflect.TypeOf(c)
	fld := make([]string, st.NumField()-1)
	for i := range fld {
		fld[i] = st.Field(i).Name
	}
	return fld
}

func (c Config) Get(key string) interface{} {
	s := reflect.ValueOf(c)
	return s.FieldByName(key).Interface()
}

func (c Config) String() string {
	str := []string{"== Config =="}
	for _, key := range c.Fields() {
		str = append(str, fmt.Sprintf("%-14s: %v", key, c.Get(key)))
	}
	if c.Temperatures != nil {
		str = append(str, fmt.Sprintf("%-14s: %v", "Temperatures", c.Temperatures))
	}
	return strings.Join(str, "\n")
}

func (c Config) SetString(key, val string) (Config, error) {
	s := reflect.ValueOf(&c).Elem()
	f := s.FieldByName(key)
	var err error
	switch f.Type().Kind() {
	case reflect.Int, reflect.Int64:
		var x int64
		if x, err = strconv.ParseInt(val, 10, 64); err == nil {
			f.SetInt(x)
		}
	case reflect.Float64:
		var x float64
		if x, err = strconv.ParseFloat(val, 64); err == nil {
			f.SetFloat(x)
		}
	case reflect.String:
		f.SetString(val)
	default:
		return c, fmt.Errorf("invalid type for SetString: %v", f.Type().Kind())
	}
	return c, err
}
