// MIT License
//
// Copyright (c) 2023 Lack
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package moddle

func desc(name string, super ...string) *TypeDescriptor {
	return &TypeDescriptor{Name: name, SuperClass: super}
}

func (d *TypeDescriptor) lists(names ...string) *TypeDescriptor {
	d.Lists = append(d.Lists, names...)
	return d
}

func (d *TypeDescriptor) refs(names ...string) *TypeDescriptor {
	d.References = append(d.References, names...)
	return d
}

func (d *TypeDescriptor) bools(names ...string) *TypeDescriptor {
	d.Booleans = append(d.Booleans, names...)
	return d
}

func bpmnTypes() []*TypeDescriptor {
	return []*TypeDescriptor{
		desc("bpmn:BaseElement").bools("camunda:asyncBefore", "camunda:asyncAfter", "camunda:exclusive"),
		desc("bpmn:RootElement", "bpmn:BaseElement"),
		desc("bpmn:Definitions", "bpmn:BaseElement").lists("rootElements"),
		desc("bpmn:FlowElementsContainer", "bpmn:BaseElement").lists("flowElements"),
		desc("bpmn:Process", "bpmn:FlowElementsContainer", "bpmn:RootElement").bools("isExecutable"),
		desc("bpmn:Collaboration", "bpmn:RootElement").lists("participants"),
		desc("bpmn:Participant", "bpmn:BaseElement").refs("processRef"),
		desc("bpmn:FlowElement", "bpmn:BaseElement"),
		desc("bpmn:FlowNode", "bpmn:FlowElement"),
		desc("bpmn:SequenceFlow", "bpmn:FlowElement").refs("sourceRef", "targetRef"),
		desc("bpmn:Activity", "bpmn:FlowNode"),
		desc("bpmn:Task", "bpmn:Activity"),
		desc("bpmn:ServiceTask", "bpmn:Task"),
		desc("bpmn:UserTask", "bpmn:Task"),
		desc("bpmn:SendTask", "bpmn:Task"),
		desc("bpmn:ReceiveTask", "bpmn:Task").refs("messageRef"),
		desc("bpmn:ScriptTask", "bpmn:Task"),
		desc("bpmn:BusinessRuleTask", "bpmn:Task"),
		desc("bpmn:ManualTask", "bpmn:Task"),
		desc("bpmn:CallActivity", "bpmn:Activity"),
		desc("bpmn:SubProcess", "bpmn:Activity", "bpmn:FlowElementsContainer"),
		desc("bpmn:Event", "bpmn:FlowNode"),
		desc("bpmn:CatchEvent", "bpmn:Event").lists("eventDefinitions"),
		desc("bpmn:ThrowEvent", "bpmn:Event").lists("eventDefinitions"),
		desc("bpmn:StartEvent", "bpmn:CatchEvent"),
		desc("bpmn:IntermediateCatchEvent", "bpmn:CatchEvent"),
		desc("bpmn:BoundaryEvent", "bpmn:CatchEvent").refs("attachedToRef"),
		desc("bpmn:EndEvent", "bpmn:ThrowEvent"),
		desc("bpmn:IntermediateThrowEvent", "bpmn:ThrowEvent"),
		desc("bpmn:Gateway", "bpmn:FlowNode"),
		desc("bpmn:ExclusiveGateway", "bpmn:Gateway"),
		desc("bpmn:InclusiveGateway", "bpmn:Gateway"),
		desc("bpmn:ParallelGateway", "bpmn:Gateway"),
		desc("bpmn:EventBasedGateway", "bpmn:Gateway"),
		desc("bpmn:ExtensionElements").lists("values"),
		desc("bpmn:EventDefinition", "bpmn:RootElement"),
		desc("bpmn:ErrorEventDefinition", "bpmn:EventDefinition").refs("errorRef"),
		desc("bpmn:MessageEventDefinition", "bpmn:EventDefinition").refs("messageRef"),
		desc("bpmn:SignalEventDefinition", "bpmn:EventDefinition").refs("signalRef"),
		desc("bpmn:TimerEventDefinition", "bpmn:EventDefinition"),
		desc("bpmn:Error", "bpmn:RootElement"),
		desc("bpmn:Message", "bpmn:RootElement"),
		desc("bpmn:Signal", "bpmn:RootElement"),
	}
}

func camundaTypes() []*TypeDescriptor {
	return []*TypeDescriptor{
		desc("camunda:InputOutput").lists("inputParameters", "outputParameters"),
		desc("camunda:InputOutputParameter"),
		desc("camunda:InputParameter", "camunda:InputOutputParameter"),
		desc("camunda:OutputParameter", "camunda:InputOutputParameter"),
		desc("camunda:InputOutputParameterDefinition"),
		desc("camunda:Script", "camunda:InputOutputParameterDefinition"),
		desc("camunda:List", "camunda:InputOutputParameterDefinition").lists("items"),
		desc("camunda:Map", "camunda:InputOutputParameterDefinition").lists("entries"),
		desc("camunda:Entry"),
		desc("camunda:Value"),
		desc("camunda:In").bools("local"),
		desc("camunda:Out").bools("local"),
		desc("camunda:Properties").lists("values"),
		desc("camunda:Property"),
		desc("camunda:Field"),
		desc("camunda:ExecutionListener").lists("fields"),
		desc("camunda:TaskListener").lists("fields"),
		desc("camunda:Connector"),
		desc("camunda:ErrorEventDefinition", "bpmn:ErrorEventDefinition"),
	}
}
