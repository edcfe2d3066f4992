package constants

import "os"

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetChartDir() string {
	return getenv("CHART_DIR", "./charts")
}

func GetOutDir() string {
	return getenv("OUT_DIR", "./out")
}

func GetDynamoEndpoint() string {
	return getenv("DYNAMO_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getenv("DYNAMO_REGION", "localhost")
}

func GetPort() string {
	return getenv("PORT", "8080")
}

func GetBandConfigPath() string {
	return getenv("BAND_CONFIG", "band.yaml")
}

// ticks per quarter note in rendered files
const PPQ = 960

const TunesTable = "chartband-tunes"

// file the library index is written to inside the out dir
const CatalogFile = "catalog.dat"
