package model

// ModDelimiter separates the parts of a mod identifier string (U+058D).
const ModDelimiter = "֍"

// ModData is the trailer of a modded layout.
type ModData struct {
	Mods     []Mod         `json:"ext_Mods" yaml:"ext_Mods"`
	SaveData []ModSaveData `json:"ext_ModSaveData" yaml:"ext_ModSaveData"`
}

type Mod struct {
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version" yaml:"version"`
	Settings string `json:"settings" yaml:"settings"`
}

// ModSaveData.Data is an opaque payload owned by the mod that wrote it.
type ModSaveData struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Data    []byte `json:"data" yaml:"data"`
}
