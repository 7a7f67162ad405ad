package json

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

type IJsonClient interface {
	Export(data any, fileName string)
}

type JsonClient struct {
	WorkingFolderPath string
	Logger            *logrus.Logger
}

func NewJsonClient(workingFolderPath string, logger *logrus.Logger) *JsonClient {
	return &JsonClient{
		WorkingFolderPath: workingFolderPath,
		Logger:            logger,
	}
}

func (jsonClient *JsonClient) Export(data any, fileName string) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		jsonClient.Logger.Fatal("Error during Marshal(): ", err)
	}
	jsonFilePath := filepath.Join(jsonClient.WorkingFolderPath, fileName)
	err = os.WriteFile(jsonFilePath, jsonData, 0644)
	if err != nil {
		jsonClient.Logger.Fatal("Error writing file: ", err)
	}
	jsonClient.Logger.Infof("Exported %s", jsonFilePath)
}
