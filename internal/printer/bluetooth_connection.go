// This file connects to a Bluetooth LE thermal printer that exposes the common
// 0xFF00 "serial" service, where command bytes are written to the 0xFF02
// characteristic. Only one printer is connected at a time.
package printer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tinygo.org/x/bluetooth"
)

type DeviceType byte

const (
	Service  DeviceType = 0x00
	Writer   DeviceType = 0x02
	Notifier DeviceType = 0x03
)

// Default number of bytes sent per write; most printers accept at least this
// much in one packet without negotiating a bigger MTU
const DefaultChunkSize = 128

var ErrNoDevice = errors.New("No devices found")

type BluetoothConnection struct {
	device    bluetooth.Device
	adapter   *bluetooth.Adapter
	writer    bluetooth.DeviceCharacteristic
	address   bluetooth.Address
	connected bool

	ChunkSize int
	// Pause between chunks so the printer's buffer can drain
	ChunkDelay time.Duration
}

func getUUID(t DeviceType) bluetooth.UUID {
	return bluetooth.NewUUID([16]byte{
		0x00, 0x00, 0xff, byte(t), 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0x80, 0x5f, 0x9b, 0x34, 0xfb,
	})
}

func newBluetoothConnection() (*BluetoothConnection, error) {
	adapter := bluetooth.DefaultAdapter

	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("Failed to enable Bluetooth:\n%w", err)
	}

	return &BluetoothConnection{
		adapter:    adapter,
		ChunkSize:  DefaultChunkSize,
		ChunkDelay: 20 * time.Millisecond,
	}, nil
}

// Scans until a device advertising the given local name turns up, then
// connects to it.
func FromBluetoothName(name string) (*BluetoothConnection, error) {
	p, err := newBluetoothConnection()
	if err != nil {
		return nil, err
	}

	devices := make(chan bluetooth.ScanResult, 1)

	go func() {
		err := p.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if result.LocalName() == name {
				slog.Info("Found device:",
					"deviceName", result.LocalName(),
				)
				devices <- result
				adapter.StopScan()
			}
		})
		if err != nil {
			slog.Error("Failed to scan for devices:",
				"err", err,
			)
			close(devices)
		}
	}()

	dev, ok := <-devices
	if !ok {
		return nil, ErrNoDevice
	}

	p.address = dev.Address
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *BluetoothConnection) connect() error {
	slog.Debug("Connecting to device...")
	device, err := p.adapter.Connect(p.address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("Failed to connect to device:\n%w", err)
	}

	// Discover the primary service (UUID 0xFF00)
	slog.Debug("Discovering service...")
	services, err := device.DiscoverServices([]bluetooth.UUID{getUUID(Service)})
	if err != nil || len(services) == 0 {
		device.Disconnect()
		return fmt.Errorf("Failed to discover service:\n%w", errors.Join(err, ErrNoDevice))
	}

	slog.Debug("Discovering characteristics...")
	characteristics, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{getUUID(Writer)})
	if err != nil || len(characteristics) == 0 {
		device.Disconnect()
		return fmt.Errorf("Failed to discover characteristics:\n%w", errors.Join(err, ErrNoDevice))
	}

	p.writer = characteristics[0]
	p.device = device
	p.connected = true
	return nil
}

// Writes data to the printer, split into ChunkSize packets.
func (p *BluetoothConnection) Write(data []byte) error {
	if !p.connected {
		return fmt.Errorf("Printer is not connected")
	}

	for _, chunk := range splitChunks(data, p.ChunkSize) {
		if _, err := p.writer.WriteWithoutResponse(chunk); err != nil {
			slog.Error("Couldn't write data", "error", err)
			return err
		}
		if p.ChunkDelay > 0 {
			time.Sleep(p.ChunkDelay)
		}
	}

	slog.Debug("Wrote data to device", "size", len(data))
	return nil
}

func (p *BluetoothConnection) Close() error {
	if !p.connected {
		return nil
	}
	p.connected = false
	return p.device.Disconnect()
}

func splitChunks(data []byte, size int) [][]byte {
	if size <= 0 {
		size = DefaultChunkSize
	}
	chunks := make([][]byte, 0, (len(data)+size-1)/size)
	for start := 0; start < len(data); start += size {
		end := min(start+size, len(data))
		chunks = append(chunks, data[start:end])
	}
	return chunks
}
