// Command petaio-layers lists the registered custom layer types and
// runs a small forward/backward demonstration of each reduction.
package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/petaio-tw/petaio-caffe/layer"
	"github.com/petaio-tw/petaio-caffe/tensor"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if flag.NArg() > 0 && flag.Arg(0) == "list" {
		for _, name := range layer.Names() {
			fmt.Println(name)
		}
		return
	}

	if err := runDemo(); err != nil {
		klog.ErrorS(err, "demo failed")
		os.Exit(1)
	}
}

// runDemo reduces [[1,2,3],[4,5,6]] along axis 1 with every operator
// and prints the forward result and the gradient of a ones upstream
// gradient.
func runDemo() error {
	for _, name := range []string{"ReduceMean", "ReduceProd", "ReduceSum", "ReduceMin", "ReduceMax"} {
		bottom, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
		if err != nil {
			return err
		}
		top, err := tensor.NewBlob(tensor.Shape{}, tensor.Float32)
		if err != nil {
			return err
		}

		l, err := layer.New(name)
		if err != nil {
			return err
		}
		bottoms, tops := []*tensor.Blob{bottom}, []*tensor.Blob{top}
		if err := l.Setup(bottoms, tops, `{"axis": 1, "keepdims": false}`); err != nil {
			return err
		}
		if err := l.Reshape(bottoms, tops); err != nil {
			return err
		}
		if err := l.Forward(bottoms, tops); err != nil {
			return err
		}

		diff := top.DiffFloat32()
		for i := range diff {
			diff[i] = 1
		}
		if err := l.Backward(tops, []bool{true}, bottoms); err != nil {
			return err
		}

		fmt.Printf("%-10s forward=%v backward=%v\n", name, top.AsFloat32(), bottom.DiffFloat32())
	}
	return nil
}
