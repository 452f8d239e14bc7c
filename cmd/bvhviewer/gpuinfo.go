package main

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// deviceTypeName mirrors the subset of vk.PhysicalDeviceType values worth
// printing in a CLI tool; unrecognized values fall back to their integer
// form rather than panicking.
func deviceTypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated GPU"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete GPU"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual GPU"
	case vk.PhysicalDeviceTypeCpu:
		return "CPU"
	default:
		return fmt.Sprintf("other (%d)", t)
	}
}

// runGPUInfo enumerates Vulkan physical devices and prints their name,
// type, and API version, without creating a window, surface, or
// swapchain. Grounded on VulkanRenderer.initVulkan/pickPhysicalDevice in
// renderer_vulkan.go, scoped down to the instance + enumeration steps
// only — a full renderer is out of scope for a diagnostics flag.
func runGPUInfo() error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW (needed to load the Vulkan loader): %v", err)
	}
	defer glfw.Terminate()

	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		return fmt.Errorf("failed to init vulkan: %v", err)
	}

	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(1, 0, 0),
		PApplicationName:   "bvhviewer\x00",
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PEngineName:        "spatialbvh\x00",
		EngineVersion:      vk.MakeVersion(1, 0, 0),
	}
	instanceInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}

	var instance vk.Instance
	if res := vk.CreateInstance(&instanceInfo, nil, &instance); res != vk.Success {
		return fmt.Errorf("failed to create vulkan instance: %v", res)
	}
	defer vk.DestroyInstance(instance, nil)

	var deviceCount uint32
	vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)
	if deviceCount == 0 {
		fmt.Println("no Vulkan-capable physical devices found")
		return nil
	}

	devices := make([]vk.PhysicalDevice, deviceCount)
	vk.EnumeratePhysicalDevices(instance, &deviceCount, devices)

	fmt.Printf("found %d Vulkan physical device(s):\n", deviceCount)
	for i, device := range devices {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(device, &props)
		props.Deref()

		name := vk.ToString(props.DeviceName[:])
		major := props.ApiVersion >> 22
		minor := (props.ApiVersion >> 12) & 0x3ff
		patch := props.ApiVersion & 0xfff
		fmt.Printf("  [%d] %s — %s, Vulkan %d.%d.%d\n", i, name, deviceTypeName(props.DeviceType), major, minor, patch)
	}
	return nil
}
